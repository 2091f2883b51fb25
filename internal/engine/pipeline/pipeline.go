package pipeline

import (
	"context"
	"encoding/base64"
	stderrors "errors"

	"github.com/rs/zerolog/log"

	"cardbridge/internal/engine/directory"
	"cardbridge/internal/pkg/errors"
	"cardbridge/internal/platform/printix"
)

// Result is the outward payload of a completed card sync.
type Result struct {
	UserID           string `json:"userId"`
	Email            string `json:"email"`
	CardNumber       string `json:"cardNumber"`
	CardNumberBase64 string `json:"cardNumberBase64"`
	Message          string `json:"message"`
}

// EmailResult is the outward payload of the resolve-only variant.
type EmailResult struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Pipeline runs the webhook-to-card-update sequence: validate the event,
// exchange credentials for a token, resolve the user's e-mail, look the
// card number up in the reference dataset, push it back as the card secret.
// Stages run strictly in order and the first Failure terminates the run.
type Pipeline struct {
	printix *printix.Client
	cards   directory.Source
}

func New(client *printix.Client, cards directory.Source) *Pipeline {
	return &Pipeline{printix: client, cards: cards}
}

// Run executes all four stages for one webhook body.
func (p *Pipeline) Run(ctx context.Context, body []byte) (*Result, *Failure) {
	userID, email, token, fail := p.resolve(ctx, body)
	if fail != nil {
		return nil, fail
	}

	data, err := p.cards.Fetch(ctx)
	if err != nil {
		return nil, upstream(errors.ErrCodeInternal, "Failed to load card directory", err)
	}

	cardNumber, ok := directory.Find(data, email)
	if !ok {
		log.Warn().Str("user_id", userID).Msg("no card number found for resolved email")
		return nil, notFound("Card number not found for user")
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(cardNumber))

	if err := p.printix.UpdateCard(ctx, token, userID, encoded); err != nil {
		return nil, upstream(errors.ErrCodeCardUpdateFailed, "Failed to update card number", err)
	}

	log.Info().Str("user_id", userID).Msg("card number updated")

	return &Result{
		UserID:           userID,
		Email:            email,
		CardNumber:       cardNumber,
		CardNumberBase64: encoded,
		Message:          "Card number updated successfully",
	}, nil
}

// ResolveEmail stops after the user-resolve stage and reports the e-mail
// only, without touching the card directory or the card endpoint.
func (p *Pipeline) ResolveEmail(ctx context.Context, body []byte) (*EmailResult, *Failure) {
	userID, email, _, fail := p.resolve(ctx, body)
	if fail != nil {
		return nil, fail
	}
	return &EmailResult{UserID: userID, Email: email}, nil
}

// resolve covers the stages shared by both variants: validation, token
// exchange, and the user fetch.
func (p *Pipeline) resolve(ctx context.Context, body []byte) (userID, email, token string, fail *Failure) {
	userID, fail = ExtractUserID(body)
	if fail != nil {
		return "", "", "", fail
	}

	token, err := p.printix.AcquireToken(ctx)
	if err != nil {
		if stderrors.Is(err, printix.ErrTokenMissing) {
			return "", "", "", upstream(errors.ErrCodeTokenMissing, "Access token is missing in the response", err)
		}
		return "", "", "", upstream(errors.ErrCodeTokenFailed, "Failed to retrieve access token", err)
	}

	user, err := p.printix.GetUser(ctx, token, userID)
	if err != nil {
		if stderrors.Is(err, printix.ErrEmailMissing) {
			return "", "", "", upstream(errors.ErrCodeEmailMissing, "User email is missing in the response", err)
		}
		return "", "", "", upstream(errors.ErrCodeUserFetchFailed, "Failed to retrieve user details", err)
	}

	return userID, user.Email, token, nil
}
