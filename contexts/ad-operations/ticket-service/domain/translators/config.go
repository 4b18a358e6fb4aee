package translators

import (
	"bytes"
	"encoding/json"
	"strings"

	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"

	"github.com/shopspring/decimal"
)

// Amount is a currency amount from payload_config. Platforms send decimal
// strings; a bare JSON number is tolerated. The zero Amount means "absent".
type Amount struct {
	dec decimal.Decimal
	set bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		dec, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		a.dec, a.set = dec, true
		return nil
	}
	dec, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return err
	}
	a.dec, a.set = dec, true
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.dec.String())
}

func (a Amount) Present() bool { return a.set }

func (a Amount) Decimal() decimal.Decimal { return a.dec }

// Cents truncates to integer cents (Meta native unit).
func (a Amount) Cents() int64 {
	return a.dec.Mul(decimal.NewFromInt(100)).IntPart()
}

// Micros truncates to integer micros (Google native unit).
func (a Amount) Micros() int64 {
	return a.dec.Mul(decimal.NewFromInt(1_000_000)).IntPart()
}

// Float64 is the platform-native float form (TikTok).
func (a Amount) Float64() float64 {
	f, _ := a.dec.Float64()
	return f
}

func (a Amount) String() string {
	if !a.set {
		return ""
	}
	return a.dec.String()
}

// rawConfig is the key-presence view of payload_config. Required-field
// checks run against it using the shared platform field table; typed
// structs below carry the values.
type rawConfig map[string]json.RawMessage

func parseRawConfig(raw json.RawMessage) (rawConfig, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return rawConfig{}, nil
	}
	var cfg rawConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, domainerrors.ErrMalformedPayload
	}
	return cfg, nil
}

// has reports field presence. A key set to null, an empty string, or an
// empty array does not count as present.
func (c rawConfig) has(field string) bool {
	value, ok := c[field]
	if !ok {
		return false
	}
	trimmed := bytes.TrimSpace(value)
	switch string(trimmed) {
	case "", "null", `""`, "[]":
		return false
	}
	return true
}

// requireStage checks the shared field table for one pipeline stage and
// returns a MissingFieldError naming the first absent field.
func (c rawConfig) requireStage(p platforms.Platform, stage platforms.Stage) error {
	for _, field := range platforms.RequiredForStage(p, stage) {
		if !c.has(field) {
			return domainerrors.MissingField(field)
		}
	}
	return nil
}

// requireOneOf enforces an at-least-one group, naming every member when all
// are absent.
func (c rawConfig) requireOneOf(group []string) error {
	for _, field := range group {
		if c.has(field) {
			return nil
		}
	}
	return domainerrors.MissingFieldError{Fields: append([]string(nil), group...)}
}

// MetaConfig is the typed shape of a Meta ticket's payload_config.
// Passthrough subobjects stay raw so unknown targeting/creative keys reach
// the platform untouched.
type MetaConfig struct {
	AdAccountID         string          `json:"ad_account_id"`
	Objective           string          `json:"objective"`
	SpecialAdCategories []string        `json:"special_ad_categories"`
	SpendCap            Amount          `json:"spend_cap"`
	BuyingType          string          `json:"buying_type"`
	Targeting           *MetaTargeting  `json:"targeting"`
	OptimizationGoal    string          `json:"optimization_goal"`
	BillingEvent        string          `json:"billing_event"`
	DailyBudget         Amount          `json:"daily_budget"`
	LifetimeBudget      Amount          `json:"lifetime_budget"`
	EndTime             string          `json:"end_time"`
	BidAmount           Amount          `json:"bid_amount"`
	PromotedObject      json.RawMessage `json:"promoted_object"`
	Creative            json.RawMessage `json:"creative"`
	TrackingSpecs       json.RawMessage `json:"tracking_specs"`
}

// MetaTargeting keeps the full targeting object raw for the wire while
// exposing the parts QA inspects.
type MetaTargeting struct {
	GeoLocations map[string]json.RawMessage `json:"geo_locations"`
	FlexibleSpec []MetaFlexibleSpec         `json:"flexible_spec"`

	raw json.RawMessage
}

type MetaFlexibleSpec struct {
	Interests []MetaInterest `json:"interests"`
}

type MetaInterest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (t *MetaTargeting) UnmarshalJSON(data []byte) error {
	type plain MetaTargeting
	var parsed plain
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	*t = MetaTargeting(parsed)
	t.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Raw is the unmodified targeting object for payload passthrough.
func (t *MetaTargeting) Raw() json.RawMessage {
	if t == nil {
		return nil
	}
	return t.raw
}

// HasGeo reports whether targeting.geo_locations is present and non-empty.
func (t *MetaTargeting) HasGeo() bool {
	return t != nil && len(t.GeoLocations) > 0
}

// Interests flattens every interest across flexible_spec entries.
func (t *MetaTargeting) Interests() []MetaInterest {
	if t == nil {
		return nil
	}
	var out []MetaInterest
	for _, spec := range t.FlexibleSpec {
		out = append(out, spec.Interests...)
	}
	return out
}

func DecodeMetaConfig(raw json.RawMessage) (MetaConfig, error) {
	var cfg MetaConfig
	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return MetaConfig{}, domainerrors.ErrMalformedPayload
	}
	return cfg, nil
}

// TikTokConfig is the typed shape of a TikTok ticket's payload_config.
type TikTokConfig struct {
	AdvertiserID        string          `json:"advertiser_id"`
	ObjectiveType       string          `json:"objective_type"`
	BudgetMode          string          `json:"budget_mode"`
	Budget              Amount          `json:"budget"`
	SpecialIndustries   []string        `json:"special_industries"`
	Placements          []string        `json:"placements"`
	LocationIDs         []string        `json:"location_ids"`
	AgeGroups           []string        `json:"age_groups"`
	Gender              string          `json:"gender"`
	InterestCategoryIDs []string        `json:"interest_category_ids"`
	BidType             string          `json:"bid_type"`
	BidPrice            Amount          `json:"bid_price"`
	OptimizationGoal    string          `json:"optimization_goal"`
	ScheduleStartTime   string          `json:"schedule_start_time"`
	ScheduleEndTime     string          `json:"schedule_end_time"`
	Pacing              string          `json:"pacing"`
	Creatives           json.RawMessage `json:"creatives"`
	LandingPageURL      string          `json:"landing_page_url"`
	DisplayName         string          `json:"display_name"`
	PixelID             string          `json:"pixel_id"`
	AppID               string          `json:"app_id"`
}

func DecodeTikTokConfig(raw json.RawMessage) (TikTokConfig, error) {
	var cfg TikTokConfig
	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return TikTokConfig{}, domainerrors.ErrMalformedPayload
	}
	return cfg, nil
}

// GoogleConfig is the typed shape of a Google Ads ticket's payload_config.
type GoogleConfig struct {
	CustomerID      string          `json:"customer_id"`
	BudgetID        string          `json:"budget_id"`
	ChannelType     string          `json:"channel_type"`
	BiddingStrategy string          `json:"bidding_strategy"`
	TargetCPA       Amount          `json:"target_cpa"`
	Networks        json.RawMessage `json:"networks"`
	AdGroupType     string          `json:"ad_group_type"`
	CPCBidMicros    int64           `json:"cpc_bid_micros"`
	Headlines       []string        `json:"headlines"`
	Descriptions    []string        `json:"descriptions"`
	Path1           string          `json:"path1"`
	Path2           string          `json:"path2"`
	FinalURLs       []string        `json:"final_urls"`
}

func DecodeGoogleConfig(raw json.RawMessage) (GoogleConfig, error) {
	var cfg GoogleConfig
	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return GoogleConfig{}, domainerrors.ErrMalformedPayload
	}
	return cfg, nil
}
