package user

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	purposeActivation = "activate"
	purposeReset      = "reset"
)

// TokenMaker issues the single-use tokens embedded in activation and
// password-reset emails. Each token signs a snapshot of mutable account
// state alongside the timestamp, so consuming the token (activating the
// account, changing the password) invalidates any copies still in
// flight.
type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	return &TokenMaker{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenMaker) sign(purpose string, u *User, ts int64) string {
	// reset tokens bind the password hash, activation tokens the
	// is_active flag
	state := strconv.FormatBool(u.IsActive)
	if purpose == purposeReset {
		state = u.Password
	}

	mac := hmac.New(sha256.New, t.secret)
	fmt.Fprintf(mac, "%s|%d|%s|%d", purpose, u.ID, state, ts)
	return hex.EncodeToString(mac.Sum(nil))
}

func (t *TokenMaker) make(purpose string, u *User) string {
	ts := t.now().Unix()
	return fmt.Sprintf("%d.%s", ts, t.sign(purpose, u, ts))
}

func (t *TokenMaker) verify(purpose, token string, u *User) bool {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return false
	}
	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return false
	}
	if t.now().Sub(time.Unix(ts, 0)) > t.ttl {
		return false
	}
	expected := t.sign(purpose, u, ts)
	return hmac.Equal([]byte(expected), []byte(parts[1]))
}

func (t *TokenMaker) MakeActivationToken(u *User) string {
	return t.make(purposeActivation, u)
}

func (t *TokenMaker) VerifyActivationToken(token string, u *User) bool {
	return t.verify(purposeActivation, token, u)
}

func (t *TokenMaker) MakeResetToken(u *User) string {
	return t.make(purposeReset, u)
}

func (t *TokenMaker) VerifyResetToken(token string, u *User) bool {
	return t.verify(purposeReset, token, u)
}
