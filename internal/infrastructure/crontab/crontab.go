package crontab

import (
	"context"
	"time"

	"studio-server/internal/config"
	"studio-server/internal/domain/appointment"
	"studio-server/internal/infrastructure/logger"
	"studio-server/internal/utils/platformerrors"

	"github.com/mileusna/crontab"
)

const (
	// Sweep cadence for retiring past appointments.
	appointmentSweepSchedule = "*/15 * * * *"
	CronJobTimeout           = 5 * time.Minute
)

type Crontab struct {
	ctab         *crontab.Crontab
	appointments appointment.AppointmentRepository
}

func NewCrontab(appointments appointment.AppointmentRepository) *Crontab {
	return &Crontab{
		ctab:         crontab.New(),
		appointments: appointments,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	// execute once on server start
	c.sweepPastAppointments(ctx)

	if err := c.ctab.AddJob(appointmentSweepSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		c.sweepPastAppointments(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to add appointment sweep job")
	}

	// Schedule environment reload job
	if err := c.ctab.AddJob("* * * * *", func() {
		// Reload config
		config.Load()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to add env reload job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

// sweepPastAppointments flips scheduled appointments whose slot has fully
// elapsed to completed so availability queries stay clean.
func (c *Crontab) sweepPastAppointments(ctx context.Context) {
	log := logger.GetLogger()

	cutoff := time.Now().UTC()
	if cfg := config.GetGlobal(); cfg != nil {
		cutoff = cutoff.Add(-time.Duration(cfg.DefaultDurationMins) * time.Minute)
	}

	affected, err := c.appointments.CompletePast(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep past appointments")
		return
	}
	if affected > 0 {
		log.Info().Msgf("Completed %d past appointments", affected)
	}
}
