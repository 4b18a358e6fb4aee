package translators

import (
	"encoding/json"
	"errors"

	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
)

// Input is what a translator needs from a ticket: the taxonomy campaign
// name already resolved by the catalog, and the raw payload_config.
type Input struct {
	CampaignName string
	Config       json.RawMessage
}

// Payload is a platform-shaped wire object.
type Payload map[string]any

// Translator converts tickets into one platform's wire schema. Builders
// fail with a MissingFieldError before any network call; entities are
// always built paused so nothing goes live on create.
type Translator interface {
	Platform() platforms.Platform
	BuildCampaignPayload(in Input) (Payload, error)
	BuildAdSetPayload(in Input, externalCampaignID string) (Payload, error)
	BuildAdPayload(in Input, externalAdSetID string) (Payload, error)
	// ValidatePayloadConfig re-checks the full required-field set for
	// campaign+adset+ad in one call. Boolean only: it is a pre-submission
	// gate, not a diagnostic.
	ValidatePayloadConfig(raw json.RawMessage) bool
	// ExternalID extracts the created entity's id from a 2xx response body.
	ExternalID(stage platforms.Stage, body []byte) (string, error)
}

var errNoExternalID = errors.New("response body carries no entity id")

// ForPlatform is the single dispatch site for translator selection.
func ForPlatform(p platforms.Platform) (Translator, error) {
	switch p {
	case platforms.Meta:
		return MetaTranslator{}, nil
	case platforms.TikTok:
		return TikTokTranslator{}, nil
	case platforms.Google:
		return GoogleTranslator{}, nil
	default:
		return nil, domainerrors.UnsupportedPlatformError{Name: string(p)}
	}
}

// ForPlatformName resolves the channel's free-text platform name first.
func ForPlatformName(name string) (Translator, error) {
	platform, err := platforms.Parse(name)
	if err != nil {
		return nil, err
	}
	return ForPlatform(platform)
}

// RequireFields checks field presence in a raw payload_config with the
// same semantics the payload builders use (null, "" and [] count as
// absent). Returns a MissingFieldError naming the first absent field.
func RequireFields(raw json.RawMessage, fields []string) error {
	cfg, err := parseRawConfig(raw)
	if err != nil {
		return err
	}
	for _, field := range fields {
		if !cfg.has(field) {
			return domainerrors.MissingField(field)
		}
	}
	return nil
}

// FieldAmount decodes one currency field from a raw payload_config. The
// second return is false when the field is absent.
func FieldAmount(raw json.RawMessage, field string) (Amount, bool, error) {
	cfg, err := parseRawConfig(raw)
	if err != nil {
		return Amount{}, false, err
	}
	value, ok := cfg[field]
	if !ok || !cfg.has(field) {
		return Amount{}, false, nil
	}
	var amount Amount
	if err := json.Unmarshal(value, &amount); err != nil {
		return Amount{}, false, err
	}
	return amount, amount.Present(), nil
}

func validateAllStages(p platforms.Platform, raw json.RawMessage) bool {
	cfg, err := parseRawConfig(raw)
	if err != nil {
		return false
	}
	for _, stage := range []platforms.Stage{platforms.StageCampaign, platforms.StageAdSet, platforms.StageAd} {
		if err := cfg.requireStage(p, stage); err != nil {
			return false
		}
	}
	for _, group := range platforms.Fields(p).OneOf {
		if err := cfg.requireOneOf(group); err != nil {
			return false
		}
	}
	return true
}
