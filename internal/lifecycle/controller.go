package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jbweber/drbdvol/internal/drbd"
	"github.com/jbweber/drbdvol/internal/drbdadm"
)

// Controller drives resource state transitions.
type Controller struct {
	status statusSource
	runner commandRunner
	log    logrus.FieldLogger
}

// New creates a controller. A nil logger uses the logrus standard logger.
func New(status statusSource, runner commandRunner, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		status: status,
		runner: runner,
		log:    log,
	}
}

// ActivateStorage brings the resource online in the Secondary role.
//
//  1. StandAlone: adjust to re-pair with the peer, then re-read state
//  2. Unconfigured (as of the latest read): up, then secondary
//
// Success means the resource is no longer Unconfigured. A resource that
// stays StandAlone after adjust is reported but not treated as a failure.
func (c *Controller) ActivateStorage(ctx context.Context, resource string) error {
	log := c.opLogger("activate-storage", resource)

	st, err := c.status.GetResource(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to activate storage %s: %w", resource, err)
	}
	log.WithField("connState", st.ConnState).Debug("observed resource state")

	if st.ConnState == drbd.ConnStandAlone {
		log.Info("resource is StandAlone, adjusting")
		if err := c.execute(ctx, log, drbdadm.VerbAdjust, resource); err != nil {
			return fmt.Errorf("failed to activate storage %s: %w", resource, err)
		}

		st, err = c.status.GetResource(ctx, resource)
		if err != nil {
			return fmt.Errorf("failed to activate storage %s: %w", resource, err)
		}
		if st.ConnState == drbd.ConnStandAlone {
			log.Warn("resource is still StandAlone after adjust, peer did not reconnect")
		}
	}

	if st.ConnState == drbd.ConnUnconfigured {
		log.Info("resource is not up, bringing it up as secondary")
		for _, verb := range []drbdadm.Verb{drbdadm.VerbUp, drbdadm.VerbSecondary} {
			if err := c.execute(ctx, log, verb, resource); err != nil {
				return fmt.Errorf("failed to activate storage %s: %w", resource, err)
			}
		}

		st, err = c.status.GetResource(ctx, resource)
		if err != nil {
			return fmt.Errorf("failed to activate storage %s: %w", resource, err)
		}
		if !st.IsUp() {
			return fmt.Errorf("failed to activate storage %s: still Unconfigured after up: %w", resource, drbd.ErrResourceNotReady)
		}
	}

	log.WithField("connState", st.ConnState).Info("storage active")
	return nil
}

// DeactivateStorage demotes the resource and takes it down. Demotion always
// comes first regardless of the current role. An Unconfigured resource is
// left alone.
func (c *Controller) DeactivateStorage(ctx context.Context, resource string) error {
	log := c.opLogger("deactivate-storage", resource)

	st, err := c.status.GetResource(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to deactivate storage %s: %w", resource, err)
	}

	if !st.IsUp() {
		log.Debug("resource already down")
		return nil
	}

	for _, verb := range []drbdadm.Verb{drbdadm.VerbSecondary, drbdadm.VerbDown} {
		if err := c.execute(ctx, log, verb, resource); err != nil {
			return fmt.Errorf("failed to deactivate storage %s: %w", resource, err)
		}
	}

	log.Info("storage inactive")
	return nil
}

// ActivateVolume promotes the resource to Primary. It refuses when the
// resource is not up, and when the peer already claims Primary.
func (c *Controller) ActivateVolume(ctx context.Context, resource string) error {
	log := c.opLogger("activate-volume", resource)

	st, err := c.status.GetResource(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to activate volume %s: %w", resource, err)
	}

	if !st.IsUp() {
		return fmt.Errorf("failed to activate volume %s: %w", resource, drbd.ErrResourceNotReady)
	}
	if st.PeerRole == drbd.RolePrimary {
		log.WithField("peerRole", st.PeerRole).Error("refusing to promote while peer is primary")
		return fmt.Errorf("failed to activate volume %s: %w", resource, drbd.ErrPeerConflict)
	}

	if err := c.execute(ctx, log, drbdadm.VerbPrimary, resource); err != nil {
		return fmt.Errorf("failed to activate volume %s: %w", resource, err)
	}

	log.Info("volume active")
	return nil
}

// DeactivateVolume demotes the resource to Secondary. Demoting a resource
// that is already Secondary succeeds.
func (c *Controller) DeactivateVolume(ctx context.Context, resource string) error {
	log := c.opLogger("deactivate-volume", resource)

	st, err := c.status.GetResource(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to deactivate volume %s: %w", resource, err)
	}

	if !st.IsUp() {
		return fmt.Errorf("failed to deactivate volume %s: %w", resource, drbd.ErrResourceNotReady)
	}

	if err := c.execute(ctx, log, drbdadm.VerbSecondary, resource); err != nil {
		return fmt.Errorf("failed to deactivate volume %s: %w", resource, err)
	}

	log.Info("volume inactive")
	return nil
}

func (c *Controller) execute(ctx context.Context, log logrus.FieldLogger, verb drbdadm.Verb, resource string) error {
	log.WithField("verb", verb).Debug("executing admin verb")
	if err := c.runner.Execute(ctx, verb, resource); err != nil {
		return fmt.Errorf("drbdadm %s: %w", verb, err)
	}
	return nil
}

func (c *Controller) opLogger(operation, resource string) logrus.FieldLogger {
	return c.log.WithFields(logrus.Fields{
		"operation": operation,
		"resource":  resource,
		"op":        uuid.NewString(),
	})
}
