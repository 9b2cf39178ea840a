package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yassirk/tijari-assist/internal/assist"
)

// AzureProvider implements SpeechProvider on the Azure Cognitive Services
// speech REST API. It is the script-optimized voice for Arabic and Tifinagh
// text.
type AzureProvider struct {
	key      string
	region   string
	voice    string
	endpoint string // overrides the regional URL in tests
	client   *http.Client
}

// NewAzureProvider creates a new Azure speech provider.
func NewAzureProvider(key, region string) *AzureProvider {
	return &AzureProvider{
		key:    key,
		region: region,
		voice:  "ar-MA-MounaNeural",
		client: &http.Client{},
	}
}

func (p *AzureProvider) Name() string { return "azure" }

// ssmlEscape escapes the three markup-unsafe characters. A single-pass
// replacer never re-escapes its own output, so & is safe alongside < and >.
var ssmlEscape = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func (p *AzureProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if p.key == "" || p.region == "" {
		return nil, assist.NewError(assist.KindCredentialMissing, "azure_credential", nil)
	}

	// Escape first, then wrap: malformed SSML causes a full provider
	// rejection, not a partial render.
	ssml := fmt.Sprintf(
		"<speak version='1.0' xml:lang='ar-MA'><voice name='%s'><prosody rate='0.9'>%s</prosody></voice></speak>",
		p.voice, ssmlEscape.Replace(text),
	)

	url := p.endpoint
	if url == "" {
		url = fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", p.region)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(ssml))
	if err != nil {
		return nil, assist.NewError(assist.KindProviderRejected, "azure_request", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", p.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", "audio-24khz-48kbitrate-mono-mp3")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, assist.NewError(assist.KindProviderRejected, "azure_transport", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, assist.NewError(assist.KindProviderRejected, "azure_rejected",
			fmt.Errorf("azure speech status %d", resp.StatusCode))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, assist.NewError(assist.KindProviderRejected, "azure_read", err)
	}
	return audio, nil
}
