package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jviciana84/prod-sub002/internal/metrics"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

func testOpportunity(marginPct float64) OpportunityPayload {
	return OpportunityPayload{
		VehicleID:        "v-1",
		LicensePlate:     "1234ABC",
		Model:            "X1 sDrive18d",
		Kind:             domain.OpportunityNotInStock,
		TargetSalePrice:  "27.570 €",
		CompetitivePrice: "29.400 €",
		MaxBid:           "21.662 €",
		Margin:           "1.830 €",
		MarginPct:        marginPct,
		CompetitorCount:  3,
	}
}

func TestDiscordNotifier_SendOpportunity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opp        OpportunityPayload
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "valid opportunity sends embed",
			opp:        testOpportunity(10),
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
		},
		{
			name:       "margin 18% uses green color",
			opp:        testOpportunity(18),
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
		},
		{
			name:       "margin 6.6% uses orange color",
			opp:        testOpportunity(6.6),
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "discord returns 429 rate limited",
			opp:        testOpportunity(10),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400",
			opp:        testOpportunity(10),
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.SendOpportunity(context.Background(), &tt.opp)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Contains(t, embed.Title, tt.opp.Model)
			assert.Contains(t, embed.Title, tt.opp.LicensePlate)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, "Not in stock", fieldMap["Type"])
			assert.Equal(t, tt.opp.TargetSalePrice, fieldMap["Target price"])
			assert.Equal(t, fmt.Sprintf("%s (%.1f%%)", tt.opp.Margin, tt.opp.MarginPct), fieldMap["Margin"])
			assert.Equal(t, "3", fieldMap["Comparables"])
			assert.NotContains(t, fieldMap, "Our stock price")
		})
	}
}

func TestDiscordNotifier_SendOpportunity_CheaperThanStock(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	opp := testOpportunity(9)
	opp.Kind = domain.OpportunityCheaper
	opp.StockPrice = "30.500 €"
	opp.LicensePlate = ""

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendOpportunity(context.Background(), &opp))

	require.Len(t, received.Embeds, 1)
	assert.Equal(t, "Opportunity: X1 sDrive18d", received.Embeds[0].Title)

	fieldMap := make(map[string]string)
	for _, f := range received.Embeds[0].Fields {
		fieldMap[f.Name] = f.Value
	}
	assert.Equal(t, "Cheaper than stock", fieldMap["Type"])
	assert.Equal(t, "30.500 €", fieldMap["Our stock price"])
}

func TestDiscordNotifier_SendBatchOpportunities(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	opps := make([]OpportunityPayload, 3)
	for i := range opps {
		opps[i] = testOpportunity(float64(5 + i))
	}

	d := NewDiscordNotifier(srv.URL)
	err := d.SendBatchOpportunities(context.Background(), opps, "pass-1")
	require.NoError(t, err)

	assert.Len(t, received.Embeds, 3)
}

func TestDiscordNotifier_SendBatchOpportunities_Overflow(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	opps := make([]OpportunityPayload, 13)
	for i := range opps {
		opps[i] = testOpportunity(10)
	}

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendBatchOpportunities(context.Background(), opps, "pass-7"))

	require.Len(t, received.Embeds, maxEmbeds+1)
	assert.Equal(t, "... and 3 more opportunities in pass pass-7", received.Embeds[maxEmbeds].Title)
}

func TestDiscordNotifier_SendBatchOpportunities_EmptySendsNothing(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendBatchOpportunities(context.Background(), nil, "pass-0"))
	assert.False(t, called)
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	opp := testOpportunity(10)
	err := d.SendOpportunity(context.Background(), &opp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	opp := testOpportunity(10)
	err := d.SendOpportunity(context.Background(), &opp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendOpportunity_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	d := NewDiscordNotifier(srv.URL)
	opp := testOpportunity(10)
	require.NoError(t, d.SendOpportunity(context.Background(), &opp))

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}
