package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bluesphere-studio/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRateLimited         = errors.New("too many inquiries, try again later")
	ErrMailerNotConfigured = errors.New("email delivery is not configured")
)

const notifyTimeout = 30 * time.Second

type InquiryStore interface {
	SaveInquiry(ctx context.Context, inq storage.Inquiry) (int64, error)
	UpdateInquiryStatus(ctx context.Context, id int64, status string) error
}

type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, params map[string]string) error
}

type Notifier interface {
	NotifyInquiry(ctx context.Context, inq storage.Inquiry)
}

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

type Service struct {
	store    InquiryStore
	mailer   Mailer
	notifier Notifier
	limiter  RateLimiter
	limit    int64
	window   time.Duration
	now      func() time.Time
	logger   *zap.Logger

	// notifications in flight, waited on by Close
	pending chan struct{}
}

type Options struct {
	RateLimit       int64
	RateLimitWindow time.Duration
}

func NewService(store InquiryStore, mailer Mailer, notifier Notifier, limiter RateLimiter, opts Options, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		mailer:   mailer,
		notifier: notifier,
		limiter:  limiter,
		limit:    opts.RateLimit,
		window:   opts.RateLimitWindow,
		now:      time.Now,
		logger:   logger,
		pending:  make(chan struct{}, 64),
	}
}

// Submit validates the form, records it and sends it on. The inquiry is
// returned whenever it was saved, even if the send then failed.
func (s *Service) Submit(ctx context.Context, form Form, clientIP string) (*storage.Inquiry, error) {
	const operation = "contact.Submit"

	if err := form.Validate(s.now()); err != nil {
		return nil, err
	}

	if s.limiter != nil && s.limit > 0 {
		exceeded, err := s.limiter.CheckRateLimit(ctx, "contact:"+clientIP, s.limit, s.window)
		if err != nil {
			// limiter outages must not block inquiries
			s.logger.Warn("Rate limit check failed", zap.String("client_ip", clientIP), zap.Error(err))
		} else if exceeded {
			s.logger.Info("Contact rate limit exceeded", zap.String("client_ip", clientIP))
			return nil, ErrRateLimited
		}
	}

	preferred, _ := form.PreferredDate(s.now())
	form.Phone = NormalizePhoneNumber(form.Phone)

	inq := storage.Inquiry{
		Reference:       uuid.NewString(),
		Name:            form.Name,
		Email:           form.Email,
		Phone:           form.Phone,
		ServiceInterest: form.ServiceInterest,
		PreferredDate:   preferred,
		Message:         form.Message,
		Status:          storage.StatusNew,
		CreatedAt:       s.now().UTC(),
	}

	id, err := s.store.SaveInquiry(ctx, inq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	inq.ID = id

	sendErr := s.send(ctx, form)
	inq.Status = storage.StatusSent
	if sendErr != nil {
		inq.Status = storage.StatusFailed
	}
	if err := s.store.UpdateInquiryStatus(ctx, id, inq.Status); err != nil {
		s.logger.Error("Failed to update inquiry status",
			zap.Int64("inquiry_id", id),
			zap.String("status", inq.Status),
			zap.Error(err))
	}

	s.notify(ctx, inq)

	if sendErr != nil {
		s.logger.Error("Failed to send inquiry email",
			zap.String("reference", inq.Reference),
			zap.Error(sendErr))
		return &inq, fmt.Errorf("%s: %w", operation, sendErr)
	}

	s.logger.Info("Inquiry received",
		zap.String("reference", inq.Reference),
		zap.String("service", inq.ServiceInterest))
	return &inq, nil
}

func (s *Service) send(ctx context.Context, form Form) error {
	if s.mailer == nil || !s.mailer.Enabled() {
		return ErrMailerNotConfigured
	}
	return s.mailer.Send(ctx, TemplateParams(form))
}

func (s *Service) notify(ctx context.Context, inq storage.Inquiry) {
	if s.notifier == nil {
		return
	}

	select {
	case s.pending <- struct{}{}:
	default:
		s.logger.Warn("Too many pending notifications, dropping", zap.String("reference", inq.Reference))
		return
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	go func() {
		defer func() { <-s.pending }()
		defer cancel()
		s.notifier.NotifyInquiry(nctx, inq)
	}()
}

// Close waits for in-flight notifications or until ctx is done.
func (s *Service) Close(ctx context.Context) error {
	acquired := 0
	defer func() {
		for ; acquired > 0; acquired-- {
			<-s.pending
		}
	}()

	for acquired < cap(s.pending) {
		select {
		case s.pending <- struct{}{}:
			acquired++
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
