package communications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	communicationRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/communication"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/communications/models"
)

// Service журналирует сообщения пациенту по бронированию.
// Реальной доставки нет: сообщение считается отправленным, когда у записи проставлен DispatchedAt.
type Service struct {
	log          CommunicationLog
	location     *time.Location
	recorder     DispatchRecorder
	timeProvider TimeProvider
	newID        func() string
	logger       Logger
}

// NewService создает новый экземпляр сервиса.
// location - часовой пояс клиники, в котором заданы дата и время визитов.
func NewService(log CommunicationLog, location *time.Location, recorder DispatchRecorder, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		log:          log,
		location:     location,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		newID:        uuid.NewString,
		logger:       logger,
	}
}

// NotifyBooked записывает подтверждение (EMAIL и SMS), запрос анкет и планирует напоминания.
// Напоминания, время которых уже прошло, не планируются.
func (s *Service) NotifyBooked(ctx context.Context, booking *domain.Booking, contact models.Contact) ([]*domain.Communication, error) {
	if booking == nil || booking.ID == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	email := strings.TrimSpace(contact.Email)
	if email == "" {
		email = FallbackEmail
	}
	phone := strings.TrimSpace(contact.Phone)
	if phone == "" {
		phone = FallbackPhone
	}

	now := s.timeProvider.Now().UTC()
	items := make([]*domain.Communication, 0, 3+len(reminderPlans))

	immediate := func(kind domain.CommunicationKind, channel domain.Channel, to, subject, message string) {
		dispatched := now
		items = append(items, &domain.Communication{
			ID:           s.newID(),
			BookingID:    booking.ID,
			Kind:         kind,
			Channel:      channel,
			Recipient:    to,
			Subject:      subject,
			Message:      message,
			ScheduledAt:  now,
			DispatchedAt: &dispatched,
			CreatedAt:    now,
		})
	}

	subject, message := confirmationEmail(booking)
	immediate(domain.KindConfirmation, domain.ChannelEmail, email, subject, message)
	subject, message = confirmationSMS(booking)
	immediate(domain.KindConfirmation, domain.ChannelSMS, phone, subject, message)
	subject, message = intakeFormsEmail()
	immediate(domain.KindIntakeForms, domain.ChannelEmail, email, subject, message)

	visitAt := booking.StartsAt(s.location)
	for _, plan := range reminderPlans {
		at := visitAt.Add(-plan.before).UTC()
		if at.Before(now) {
			s.logger.Info("NotifyBooked: skipping %q for booking id=%s, visit is in less than %s",
				plan.subject, booking.ID, plan.before)
			continue
		}

		to := email
		if plan.channel == domain.ChannelSMS {
			to = phone
		}
		items = append(items, &domain.Communication{
			ID:             s.newID(),
			BookingID:      booking.ID,
			Kind:           domain.KindReminder,
			Channel:        plan.channel,
			Recipient:      to,
			Subject:        plan.subject,
			Message:        plan.message,
			ActionRequired: plan.actionRequired,
			ScheduledAt:    at,
			CreatedAt:      now,
		})
	}

	if err := s.log.Append(ctx, items); err != nil {
		s.logger.Error("NotifyBooked: failed to log communications for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: NotifyBooked - append: %v", ErrInternal, err)
	}

	for _, c := range items {
		if c.DispatchedAt != nil {
			s.logger.Info("NotifyBooked: %s to %s [%s] booking=%s: %s", c.Channel, c.Recipient, c.Subject, c.BookingID, c.Message)
		}
	}
	s.logger.Info("NotifyBooked: logged %d communications for booking id=%s", len(items), booking.ID)

	return items, nil
}

// ListByBooking возвращает журнал коммуникаций бронирования
func (s *Service) ListByBooking(ctx context.Context, bookingID string) (*models.CommunicationListResponse, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	items, err := s.log.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListByBooking: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListByBooking - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCommunicationList(items), nil
}

// DispatchDue отмечает наступившие напоминания отправленными и возвращает их количество
func (s *Service) DispatchDue(ctx context.Context, limit int) (int, error) {
	now := s.timeProvider.Now().UTC()

	due, err := s.log.ListDue(ctx, now, limit)
	if err != nil {
		s.logger.Error("DispatchDue: failed to list due communications: %v", err)
		return 0, fmt.Errorf("%w: DispatchDue - list due: %v", ErrInternal, err)
	}

	dispatched := 0
	for _, c := range due {
		if err := s.log.MarkDispatched(ctx, c.ID, now); err != nil {
			// другой экземпляр успел раньше
			if errors.Is(err, communicationRepo.ErrCommunicationNotFound) {
				continue
			}
			s.logger.Error("DispatchDue: failed to mark communication id=%s: %v", c.ID, err)
			return dispatched, fmt.Errorf("%w: DispatchDue - mark dispatched: %v", ErrInternal, err)
		}

		dispatched++
		if s.recorder != nil {
			s.recorder.RecordReminderDispatched(string(c.Channel))
		}
		s.logger.Info("DispatchDue: %s to %s [%s] booking=%s: %s", c.Channel, c.Recipient, c.Subject, c.BookingID, c.Message)
	}

	return dispatched, nil
}
