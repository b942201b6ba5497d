package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/madflojo/tasks"

	"github.com/casahub/casahub-go/config"
)

type SchedulerService interface {
	StartInvitationSweep()
	DropTask(taskID string)
}

const invitationSweepTaskID = "invitation-sweep"

func NewSchedulerService(adminService AdminService, scheduler *tasks.Scheduler, conf *config.Config, log *zap.Logger) SchedulerService {
	return &schedulerService{
		service: service{
			adminService: adminService,
			log:          log,
		},
		scheduler: scheduler,
		conf:      conf,
	}
}

type schedulerService struct {
	service
	scheduler *tasks.Scheduler
	conf      *config.Config
}

func (s *schedulerService) DropTask(taskID string) {
	s.scheduler.Del(taskID)
}

// StartInvitationSweep registers the hourly job clearing invitation
// tokens older than the configured validity window.
func (s *schedulerService) StartInvitationSweep() {
	s.scheduler.AddWithID(invitationSweepTaskID, &tasks.Task{
		Interval: time.Hour,
		TaskFunc: func() error {
			cutoff := time.Now().Add(-s.conf.InvitationValidity)
			n, err := s.adminService.SweepExpiredInvitations(context.Background(), cutoff)
			if err != nil {
				s.log.Error("sweeping expired invitations", zap.Error(err))
				return nil
			}
			if n > 0 {
				s.log.Info("swept expired invitations", zap.Int64("count", n))
			}
			return nil
		},
	})
}
