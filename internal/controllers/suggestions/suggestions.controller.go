package suggestionsController

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/sanitize"
	"server/internal/utils"
)

const CAPTCHA_EXPIRY = 5 * time.Minute

// ErrCaptchaFailed covers expired, already-used, wrong-session and
// wrong-answer cases alike; the client only learns that it must fetch a
// fresh challenge.
var ErrCaptchaFailed = fmt.Errorf("captcha validation failed")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

type Captcha struct {
	ID        string `json:"captchaId"`
	Challenge string `json:"challenge"`
}

type SuggestionRequest struct {
	Types         []string `json:"types"`
	Explanation   string   `json:"explanation"`
	CaptchaID     string   `json:"captchaId"`
	CaptchaAnswer string   `json:"captchaAnswer"`
}

type SuggestionController struct {
	db             database.DB
	suggestionRepo repositories.SuggestionRepository
	log            logger.Logger
}

func New(db database.DB, suggestionRepo repositories.SuggestionRepository) *SuggestionController {
	return &SuggestionController{
		db:             db,
		suggestionRepo: suggestionRepo,
		log:            logger.New("SuggestionController"),
	}
}

// IssueCaptcha creates a 5-digit challenge bound to the caller's session.
// The challenge lives in the session cache for five minutes and is deleted
// on its first validation, so it can be used exactly once.
func (sc *SuggestionController) IssueCaptcha(ctx context.Context, sessionID string) (Captcha, error) {
	log := sc.log.Function("IssueCaptcha")

	if sessionID == "" {
		return Captcha{}, &ValidationError{Msg: "missing session"}
	}

	code, err := fiveDigitCode()
	if err != nil {
		return Captcha{}, log.Err("failed to generate captcha code", err)
	}

	captcha := Captcha{ID: utils.NewID(), Challenge: code}

	if err := database.NewCacheBuilder(sc.db.Cache.Session, captchaKey(sessionID, captcha.ID)).
		WithValue(code).
		WithTTL(CAPTCHA_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return Captcha{}, log.Err("failed to store captcha challenge", err)
	}

	return captcha, nil
}

// Submit validates the captcha exactly once and persists the suggestion.
func (sc *SuggestionController) Submit(ctx context.Context, sessionID string, req SuggestionRequest) error {
	log := sc.log.Function("Submit")

	if len(req.Types) == 0 {
		return &ValidationError{Msg: "at least one suggestion type is required"}
	}
	if strings.TrimSpace(req.Explanation) == "" {
		return &ValidationError{Msg: "explanation is required"}
	}
	if sessionID == "" || req.CaptchaID == "" {
		return ErrCaptchaFailed
	}

	// Read-and-delete: whatever the outcome of the comparison, the
	// challenge is consumed.
	expected, found, err := database.NewCacheBuilder(sc.db.Cache.Session, captchaKey(sessionID, req.CaptchaID)).
		WithContext(ctx).
		TakeString()
	if err != nil {
		return log.Err("failed to read captcha challenge", err)
	}
	if !found || expected != strings.TrimSpace(req.CaptchaAnswer) {
		return ErrCaptchaFailed
	}

	suggestion := &Suggestion{
		Types:       req.Types,
		Explanation: sanitize.HTML(req.Explanation),
	}
	if err := sc.suggestionRepo.Create(ctx, suggestion); err != nil {
		return log.Err("failed to persist suggestion", err)
	}

	log.Info("accepted suggestion", "suggestionID", suggestion.ID, "types", req.Types)
	return nil
}

func fiveDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()+10000), nil
}

func captchaKey(sessionID, captchaID string) string {
	return "captcha:" + sessionID + ":" + captchaID
}
