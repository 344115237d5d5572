package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"bazaarchat-be/internal/dto"
	"bazaarchat-be/internal/pkg/logger"
	"bazaarchat-be/internal/pkg/serverutils"
	"bazaarchat-be/internal/repository/memory"
	"bazaarchat-be/pkg/events"
	pktNats "bazaarchat-be/pkg/nats"
	"bazaarchat-be/pkg/sms"
	"bazaarchat-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL            = 5 * time.Minute
	otpResendCooldown = 60 * time.Second
	otpMaxAttempts    = 5
	accessTokenExpiry = 24 * time.Hour
)

type IOTPService interface {
	RequestOTP(ctx context.Context, req *dto.RequestOTPRequest) error
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error)
}

type otpService struct {
	redis          *redis.Client
	smsClient      sms.ISMSClient
	sessions       *memory.SessionRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewOTPService(
	redisClient *redis.Client,
	smsClient sms.ISMSClient,
	sessions *memory.SessionRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IOTPService {
	return &otpService{
		redis:          redisClient,
		smsClient:      smsClient,
		sessions:       sessions,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func otpKey(phone string) string {
	return "otp:code:" + phone
}

func otpCooldownKey(phone string) string {
	return "otp:cooldown:" + phone
}

func otpAttemptsKey(phone string) string {
	return "otp:attempts:" + phone
}

// RequestOTP generates a code, stores its bcrypt hash in redis with a
// TTL, and sends the plaintext over SMS. Only the hash ever rests.
func (s *otpService) RequestOTP(ctx context.Context, req *dto.RequestOTPRequest) error {
	// Cooldown gate against SMS abuse.
	set, err := s.redis.SetNX(ctx, otpCooldownKey(req.Phone), "1", otpResendCooldown).Result()
	if err != nil {
		return err
	}
	if !set {
		return serverutils.ErrTooManyOTP
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, otpKey(req.Phone), string(hash), otpTTL).Err(); err != nil {
		return err
	}
	s.redis.Del(ctx, otpAttemptsKey(req.Phone))

	if err := s.smsClient.SendOTP(ctx, req.Phone, code); err != nil {
		s.logger.Error("otp", "failed to send otp sms", map[string]interface{}{
			"phone": req.Phone,
			"error": err.Error(),
		})
		return fmt.Errorf("failed to send otp: %w", err)
	}

	s.logger.Info("otp", "otp issued", map[string]interface{}{"phone": req.Phone})
	return nil
}

// VerifyOTP checks the submitted code against the stored hash, marks
// the session authenticated and issues a JWT bound to phone + session.
func (s *otpService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error) {
	if err := store.ValidateSessionID(req.SessionId); err != nil {
		return nil, fmt.Errorf("%w: %s", serverutils.ErrInvalidSession, req.SessionId)
	}

	attempts, err := s.redis.Incr(ctx, otpAttemptsKey(req.Phone)).Result()
	if err != nil {
		return nil, err
	}
	if attempts == 1 {
		s.redis.Expire(ctx, otpAttemptsKey(req.Phone), otpTTL)
	}
	if attempts > otpMaxAttempts {
		return nil, serverutils.ErrTooManyOTP
	}

	hash, err := s.redis.Get(ctx, otpKey(req.Phone)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, serverutils.ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Code)) != nil {
		return nil, serverutils.ErrInvalidOTP
	}

	// Single use.
	s.redis.Del(ctx, otpKey(req.Phone), otpAttemptsKey(req.Phone))

	s.sessions.SetAuthenticated(req.SessionId, true)

	claims := jwt.MapClaims{
		"phone":      req.Phone,
		"session_id": req.SessionId,
		"exp":        time.Now().Add(accessTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypePhoneVerified,
			Data: map[string]interface{}{
				"phone":      req.Phone,
				"session_id": req.SessionId,
				"time":       time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("otp", "failed to publish verification event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.VerifyOTPResponse{
		AccessToken: signedToken,
		SessionId:   req.SessionId,
	}, nil
}
