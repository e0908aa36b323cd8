package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/utils"
)

// Notifier delivers typed marketplace events. Implementations are
// best-effort: they log failures and never return them, so a delivery
// problem can never roll back the state change that triggered it.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// NoopNotifier drops everything. Used in tests and local setups without
// messaging credentials.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, models.Notification) {}

// DispatchNotifier fans a notification out over Twilio SMS and SendGrid
// email. Worker contact details are resolved from the worker profile;
// company-facing events are currently log-only since companies have no
// direct contact channel on record.
type DispatchNotifier struct {
	workerRepo repositories.WorkerRepository

	twClient *twilio.RestClient
	sgClient *sendgrid.Client

	fromPhone       string
	fromEmail       string
	orgName         string
	sendgridSandbox bool
}

func NewDispatchNotifier(
	workerRepo repositories.WorkerRepository,
	twClient *twilio.RestClient,
	sgClient *sendgrid.Client,
	fromPhone, fromEmail, orgName string,
	sendgridSandbox bool,
) *DispatchNotifier {
	return &DispatchNotifier{
		workerRepo:      workerRepo,
		twClient:        twClient,
		sgClient:        sgClient,
		fromPhone:       fromPhone,
		fromEmail:       fromEmail,
		orgName:         orgName,
		sendgridSandbox: sendgridSandbox,
	}
}

func (d *DispatchNotifier) Notify(ctx context.Context, n models.Notification) {
	subject, body, workerID := renderNotification(n)

	utils.Logger.WithField("kind", n.Kind).Infof("Dispatching notification: %s", subject)

	if workerID == uuid.Nil {
		// company- or shift-scoped event with no direct recipient
		return
	}

	worker, err := d.workerRepo.GetByID(ctx, workerID)
	if err != nil || worker == nil {
		utils.Logger.WithError(err).Warnf("Cannot resolve worker %s for notification %s", workerID, n.Kind)
		return
	}

	d.sendSMS(worker.PhoneNumber, subject+" :: "+body)
	d.sendEmail(worker.FirstName+" "+worker.LastName, worker.Email, subject, body)
}

func (d *DispatchNotifier) sendSMS(to, body string) {
	if d.twClient == nil {
		utils.Logger.Warn("Twilio client is nil, skipping SMS")
		return
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(d.fromPhone)
	params.SetBody(body)
	if _, err := d.twClient.Api.CreateMessage(params); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send SMS to %s", to)
	}
}

func (d *DispatchNotifier) sendEmail(toName, toAddr, subject, body string) {
	if d.sgClient == nil {
		utils.Logger.Warn("SendGrid client is nil, skipping email")
		return
	}
	from := mail.NewEmail(d.orgName, d.fromEmail)
	to := mail.NewEmail(toName, toAddr)
	msg := mail.NewSingleEmail(from, subject, to, body, "<p>"+body+"</p>")
	if d.sendgridSandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}
	if _, err := d.sgClient.Send(msg); err != nil {
		utils.Logger.WithError(err).Warnf("Email send failure to %s", toAddr)
	}
}

// renderNotification produces the human copy plus the worker recipient, if
// the variant has one.
func renderNotification(n models.Notification) (subject, body string, workerID uuid.UUID) {
	switch n.Kind {
	case models.NotifyNewApplication:
		p := n.NewApplication
		return "New application received",
			fmt.Sprintf("%s applied to %q (match %d)", p.WorkerName, p.ShiftTitle, p.MatchScore),
			uuid.Nil
	case models.NotifyShiftConfirmed:
		p := n.ShiftConfirmed
		body := fmt.Sprintf("You are confirmed for %q starting %s.", p.ShiftTitle, p.StartAt.Format("Mon 2 Jan 15:04"))
		if p.HasContract {
			body += " Your contract is ready to sign."
		}
		return "Shift confirmed", body, p.WorkerID
	case models.NotifyApplicationRejected:
		p := n.ApplicationRejected
		return "Application update",
			fmt.Sprintf("Your application for %q was not accepted this time.", p.ShiftTitle),
			p.WorkerID
	case models.NotifyCancelledByWorker, models.NotifyCancelledByCompany:
		p := n.Cancelled
		return "Shift cancelled",
			fmt.Sprintf("Your shift %q was cancelled.", p.ShiftTitle),
			p.WorkerID
	case models.NotifyCancelledWithComp:
		p := n.Cancelled
		return "Shift cancelled with compensation",
			fmt.Sprintf("Your shift %q was cancelled late; compensation %.2f is owed.", p.ShiftTitle, p.Compensation),
			p.WorkerID
	case models.NotifyContractReady:
		p := n.ContractReady
		return "Contract ready",
			fmt.Sprintf("Your contract for %q is ready to sign.", p.ShiftTitle),
			p.WorkerID
	case models.NotifyContractCompleted:
		p := n.ContractCompleted
		return "Contract completed",
			"Both parties have signed your contract.",
			p.WorkerID
	case models.NotifyShiftCancelled:
		p := n.ShiftCancelled
		return "Shift cancelled",
			fmt.Sprintf("Shift %q was cancelled (%d applications affected).", p.ShiftTitle, p.AffectedCount),
			uuid.Nil
	default:
		return string(n.Kind), "", uuid.Nil
	}
}
