package riverkit

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/fernandezvara/dbkit"
)

// DefaultResetTokenTTL is the validity window applied when IssueResetToken
// is called with a non-positive TTL.
const DefaultResetTokenTTL = time.Hour

// resetSecretBytes is the entropy of a reset token secret before encoding.
const resetSecretBytes = 32

// ============================================================================
// PASSWORD RESET TOKENS
// ============================================================================

// IssueResetToken generates a high-entropy single-use token for the given
// owner and persists it. Multiple outstanding tokens per owner are permitted;
// each stays independently valid until used or expired.
//
// The raw secret is returned exactly once, here; afterwards it only serves
// as the lookup key for Verify/Redeem.
func (s *Service) IssueResetToken(ctx context.Context, ownerID string, ttl time.Duration) (*ResetToken, string, error) {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}

	secret, err := generateSecret()
	if err != nil {
		return nil, "", err
	}

	token := &ResetToken{
		ActorID:   ownerID,
		Secret:    secret,
		ExpiresAt: time.Now().Add(ttl),
	}

	result, err := s.db.NewInsert().Model(token).Exec(ctx)
	err = dbkit.WithErr(result, err, "CreateResetToken").Err()
	if err != nil {
		return nil, "", NewError(ErrDatabaseError, "failed to create reset token").
			WithTarget(ownerID)
	}

	return token, secret, nil
}

// ResetLink builds the recovery link the delivery channel sends to the owner.
// Transport (email, fallback display) is the caller's concern.
func (s *Service) ResetLink(secret string) string {
	return s.baseURL + "/reset-password/" + secret
}

// VerifyResetToken resolves a secret to its owner if the token is still
// valid. Unknown, used and expired tokens all yield the same ErrTokenInvalid
// so callers cannot distinguish the cause.
func (s *Service) VerifyResetToken(ctx context.Context, secret string) (string, error) {
	token, err := s.resetTokenBySecret(ctx, secret)
	if err != nil {
		return "", err
	}
	if !token.ValidAt(time.Now()) {
		return "", ErrTokenInvalid
	}
	return token.ActorID, nil
}

// RedeemResetToken atomically consumes a valid token and returns its owner.
// The used flag flips via a single conditional update, so under concurrent
// redemption exactly one caller succeeds; every other caller gets
// ErrTokenInvalid even inside the validity window.
func (s *Service) RedeemResetToken(ctx context.Context, secret string) (string, error) {
	now := time.Now()

	result, err := s.db.NewUpdate().
		Model((*ResetToken)(nil)).
		Set("used = TRUE").
		Set("used_at = ?", now).
		Where("secret = ?", secret).
		Where("used = FALSE").
		Where("expires_at > ?", now).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "RedeemResetToken").Err()
	if err != nil {
		return "", NewError(ErrDatabaseError, "failed to redeem reset token")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 0 {
		// Unknown, expired or already redeemed; all uniform to the caller.
		return "", ErrTokenInvalid
	}

	token, err := s.resetTokenBySecret(ctx, secret)
	if err != nil {
		return "", err
	}

	s.RecordActivity(ctx, ActivityEntry{
		ActorID:     token.ActorID,
		Action:      ActionPasswordReset,
		Description: "Password redefined via recovery link",
	})

	return token.ActorID, nil
}

func (s *Service) resetTokenBySecret(ctx context.Context, secret string) (*ResetToken, error) {
	var token ResetToken
	err := dbkit.WithErr1(s.db.NewSelect().Model(&token).Where("secret = ?", secret).Limit(1).Scan(ctx), "GetResetToken").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	return &token, nil
}

// generateSecret returns a URL-safe random secret with resetSecretBytes of
// entropy, matching the shape of the links the recovery flow mails out.
func generateSecret() (string, error) {
	buf := make([]byte, resetSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
