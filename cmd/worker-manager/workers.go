// cmd/worker-manager/workers.go
package main

import (
	"time"

	"ghotok-workers/internal/auth"
	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/config"
	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/common/observability"
	"ghotok-workers/internal/matching"
	"ghotok-workers/internal/options"
	"ghotok-workers/internal/profiles"

	adminlogin "ghotok-workers/internal/workers/auth/admin-login"
	adminlogout "ghotok-workers/internal/workers/auth/admin-logout"
	validatesession "ghotok-workers/internal/workers/auth/validate-session"
	notifymatch "ghotok-workers/internal/workers/communication/notify-match"
	matchprofile "ghotok-workers/internal/workers/matching/match-profile"
	managecustomoptions "ghotok-workers/internal/workers/options/manage-custom-options"
	createprofile "ghotok-workers/internal/workers/profiles/create-profile"
	deleteprofile "ghotok-workers/internal/workers/profiles/delete-profile"
	getprofile "ghotok-workers/internal/workers/profiles/get-profile"
	getprofilestats "ghotok-workers/internal/workers/profiles/get-profile-stats"
	searchprofiles "ghotok-workers/internal/workers/profiles/search-profiles"
	updateprofile "ghotok-workers/internal/workers/profiles/update-profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// services are the shared domain objects every handler is built from.
type services struct {
	profiles      *profiles.Store
	index         *profiles.Index // nil when search indexing is off
	options       *options.Store
	authenticator *auth.Authenticator
	matcher       *matching.Matcher
	email         notifymatch.EmailSender
	sms           notifymatch.SMSSender
}

// buildHandlers returns a handler per task type.
func buildHandlers(cfg *config.Config, svc *services, log logger.Logger) map[string]camunda.JobHandler {
	timeout := func(taskType string) time.Duration {
		return config.GetWorkerConfig(cfg, taskType).TimeoutDuration()
	}

	n := cfg.Notifications
	return map[string]camunda.JobHandler{
		matchprofile.TaskType: matchprofile.NewHandler(
			&matchprofile.Config{Timeout: timeout(matchprofile.TaskType)},
			svc.profiles, svc.matcher, log),

		createprofile.TaskType: createprofile.NewHandler(
			&createprofile.Config{Timeout: timeout(createprofile.TaskType)},
			svc.profiles, svc.index, log),
		updateprofile.TaskType: updateprofile.NewHandler(
			&updateprofile.Config{Timeout: timeout(updateprofile.TaskType)},
			svc.profiles, svc.index, log),
		deleteprofile.TaskType: deleteprofile.NewHandler(
			&deleteprofile.Config{Timeout: timeout(deleteprofile.TaskType)},
			svc.profiles, svc.index, log),
		getprofile.TaskType: getprofile.NewHandler(
			&getprofile.Config{Timeout: timeout(getprofile.TaskType)},
			svc.profiles, log),
		searchprofiles.TaskType: searchprofiles.NewHandler(
			&searchprofiles.Config{
				Timeout:            timeout(searchprofiles.TaskType),
				FallbackToDatabase: true,
			},
			svc.profiles, svc.index, log),
		getprofilestats.TaskType: getprofilestats.NewHandler(
			&getprofilestats.Config{Timeout: timeout(getprofilestats.TaskType)},
			svc.profiles, log),

		managecustomoptions.TaskType: managecustomoptions.NewHandler(
			&managecustomoptions.Config{Timeout: timeout(managecustomoptions.TaskType)},
			svc.options, log),

		adminlogin.TaskType: adminlogin.NewHandler(
			&adminlogin.Config{Timeout: timeout(adminlogin.TaskType)},
			svc.authenticator, log),
		adminlogout.TaskType: adminlogout.NewHandler(
			&adminlogout.Config{Timeout: timeout(adminlogout.TaskType)},
			svc.authenticator.Sessions(), log),
		validatesession.TaskType: validatesession.NewHandler(
			&validatesession.Config{Timeout: timeout(validatesession.TaskType)},
			svc.authenticator, log),

		notifymatch.TaskType: notifymatch.NewHandler(
			&notifymatch.Config{
				Timeout:        timeout(notifymatch.TaskType),
				EmailEnabled:   n.Email.Enabled,
				SMSEnabled:     n.SMS.Enabled,
				StaffRecipient: n.Email.StaffRecipient,
			},
			svc.email, svc.sms, log),
	}
}

// startWorkers opens a job worker for every enabled task type.
func startWorkers(
	client zbc.Client,
	cfg *config.Config,
	handlers map[string]camunda.JobHandler,
	zapLog *zap.Logger,
	obs *observability.Observability,
) []*camunda.CamundaWorker {
	var started []*camunda.CamundaWorker
	for taskType, handler := range handlers {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		started = append(started, camunda.NewWorker(client, taskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       wcfg.TimeoutDuration(),
		}, handler, zapLog, obs))
	}
	return started
}
