package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jviciana84/prod-sub002/internal/metrics"
)

const (
	colorGreen  = 0x2ECC71 // margin 15%+
	colorYellow = 0xF1C40F // margin 8-15%
	colorOrange = 0xE67E22 // margin below 8%
)

// maxEmbeds is Discord's per-message embed limit.
const maxEmbeds = 10

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendOpportunity sends a single opportunity as a Discord embed.
func (d *DiscordNotifier) SendOpportunity(ctx context.Context, o *OpportunityPayload) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(o)},
	}
	return d.post(ctx, payload)
}

// SendBatchOpportunities sends multiple opportunities as a single Discord
// message.
func (d *DiscordNotifier) SendBatchOpportunities(
	ctx context.Context,
	opps []OpportunityPayload,
	passID string,
) error {
	if len(opps) == 0 {
		return nil
	}

	limit := min(len(opps), maxEmbeds)
	embeds := make([]discordEmbed, 0, limit+1)
	for i := range limit {
		embeds = append(embeds, buildEmbed(&opps[i]))
	}

	if len(opps) > maxEmbeds {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more opportunities in pass %s", len(opps)-maxEmbeds, passID),
			Color:       colorYellow,
			Description: "Check the opportunity board for the full list.",
		})
	}

	return d.post(ctx, discordWebhookPayload{Embeds: embeds})
}

func buildEmbed(o *OpportunityPayload) discordEmbed {
	title := fmt.Sprintf("Opportunity: %s", o.Model)
	if o.LicensePlate != "" {
		title = fmt.Sprintf("Opportunity: %s (%s)", o.Model, o.LicensePlate)
	}

	fields := []discordEmbedField{
		{Name: "Type", Value: kindLabel(o.Kind), Inline: true},
		{Name: "Target price", Value: o.TargetSalePrice, Inline: true},
		{Name: "Competitive price", Value: o.CompetitivePrice, Inline: true},
		{Name: "Margin", Value: fmt.Sprintf("%s (%.1f%%)", o.Margin, o.MarginPct), Inline: true},
		{Name: "Max bid", Value: o.MaxBid, Inline: true},
		{Name: "Comparables", Value: fmt.Sprintf("%d", o.CompetitorCount), Inline: true},
	}
	if o.StockPrice != "" && o.StockPrice != "-" {
		fields = append(fields, discordEmbedField{Name: "Our stock price", Value: o.StockPrice, Inline: true})
	}

	return discordEmbed{
		Title:  title,
		Color:  marginColor(o.MarginPct),
		Fields: fields,
	}
}

func marginColor(pct float64) int {
	switch {
	case pct >= 15:
		return colorGreen
	case pct >= 8:
		return colorYellow
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
