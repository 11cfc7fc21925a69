package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/drbdvol/internal/naming"
)

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetFormatter(&logrus.TextFormatter{})

	require.NoError(t, setupLogging("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, setupLogging("loud", "text"))
	assert.Error(t, setupLogging("info", "xml"))
}

func TestLoadStorage(t *testing.T) {
	defer func() {
		resourceName = ""
		configPath = "/etc/drbdvol/storage.yaml"
		_ = rootCmd.PersistentFlags().Lookup("config").Value.Set(configPath)
		rootCmd.PersistentFlags().Lookup("config").Changed = false
	}()

	t.Run("resource flag without config", func(t *testing.T) {
		resourceName = "vm-101-disk-1"

		s, err := loadStorage()
		require.NoError(t, err)
		assert.Equal(t, "vm-101-disk-1", s.Spec.Resource)
		assert.Equal(t, "dev/drbd", s.Spec.DeviceNamespace)
	})

	t.Run("invalid resource flag without config", func(t *testing.T) {
		resourceName = "not a volume"

		_, err := loadStorage()
		require.Error(t, err)
		assert.ErrorIs(t, err, naming.ErrInvalidVolumeName)
	})

	t.Run("config file with resource override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "storage.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`apiVersion: drbdvol.cofront.xyz/v1alpha1
kind: DRBDStorage
metadata:
  name: replicated
spec:
  resource: vm-101-disk-1
  volumeIndex: 1
`), 0644))

		require.NoError(t, rootCmd.PersistentFlags().Set("config", path))
		resourceName = "vm-101-disk-2"

		s, err := loadStorage()
		require.NoError(t, err)
		assert.Equal(t, "vm-101-disk-2", s.Spec.Resource)
		assert.Equal(t, 1, s.Spec.VolumeIndex)
		assert.Equal(t, "replicated", s.Name)
	})

	t.Run("config file with invalid resource override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "storage.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`apiVersion: drbdvol.cofront.xyz/v1alpha1
kind: DRBDStorage
spec:
  resource: vm-101-disk-1
`), 0644))

		require.NoError(t, rootCmd.PersistentFlags().Set("config", path))
		resourceName = "r0"

		_, err := loadStorage()
		require.Error(t, err)
		assert.ErrorIs(t, err, naming.ErrInvalidVolumeName)
	})

	t.Run("missing config file", func(t *testing.T) {
		require.NoError(t, rootCmd.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "nope.yaml")))
		resourceName = ""

		_, err := loadStorage()
		assert.Error(t, err)
	})
}

func TestNewEnv(t *testing.T) {
	defer func() { resourceName = "" }()
	resourceName = "vm-300-disk-0"

	e, err := newEnv()
	require.NoError(t, err)
	assert.Equal(t, "vm-300-disk-0", e.mgr.Resource())
	assert.Equal(t, "/dev/drbd/by-res/vm-300-disk-0/0", e.mgr.DevicePath())
}
