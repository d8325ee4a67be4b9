package services

import (
	"strings"

	"signal/analytics/domain"

	"github.com/ua-parser/uap-go/uaparser"
)

// Automated-traffic categories.
const (
	CategorySearchEngine = "search_engine"
	CategoryPreview      = "preview"
	CategoryMonitor      = "monitor"
	CategoryAI           = "ai"
	CategoryAutomated    = "automated"
)

type botSignature struct {
	token    string
	category string
}

// Known crawler signatures, matched case-insensitively against the
// user-agent string. Checked before the generic parser so declared crawlers
// land in their benign categories.
var botSignatures = []botSignature{
	{"googlebot", CategorySearchEngine},
	{"bingbot", CategorySearchEngine},
	{"duckduckbot", CategorySearchEngine},
	{"baiduspider", CategorySearchEngine},
	{"yandexbot", CategorySearchEngine},
	{"applebot", CategorySearchEngine},

	{"slackbot", CategoryPreview},
	{"twitterbot", CategoryPreview},
	{"facebookexternalhit", CategoryPreview},
	{"discordbot", CategoryPreview},
	{"linkedinbot", CategoryPreview},
	{"telegrambot", CategoryPreview},
	{"whatsapp", CategoryPreview},

	{"uptimerobot", CategoryMonitor},
	{"pingdom", CategoryMonitor},
	{"statuscake", CategoryMonitor},
	{"site24x7", CategoryMonitor},
	{"betteruptime", CategoryMonitor},

	{"gptbot", CategoryAI},
	{"chatgpt-user", CategoryAI},
	{"oai-searchbot", CategoryAI},
	{"claudebot", CategoryAI},
	{"anthropic-ai", CategoryAI},
	{"perplexitybot", CategoryAI},
	{"ccbot", CategoryAI},
	{"bytespider", CategoryAI},

	{"headlesschrome", CategoryAutomated},
	{"phantomjs", CategoryAutomated},
	{"selenium", CategoryAutomated},
	{"puppeteer", CategoryAutomated},
	{"playwright", CategoryAutomated},
	{"curl/", CategoryAutomated},
	{"wget/", CategoryAutomated},
	{"python-requests", CategoryAutomated},
	{"go-http-client", CategoryAutomated},
	{"scrapy", CategoryAutomated},
}

// BotClassifier labels automated traffic from request signals: header shape
// first, then known crawler signatures, then the uap-core device family.
type BotClassifier struct {
	parser *uaparser.Parser
}

// NewBotClassifier builds a classifier on the compiled-in uap-core
// definitions.
func NewBotClassifier() *BotClassifier {
	return &BotClassifier{parser: uaparser.NewFromSaved()}
}

// Classify reports the bot category for a request and whether it is
// automated traffic at all. Organic browser traffic returns ("", false).
func (b *BotClassifier) Classify(meta domain.RequestMeta) (string, bool) {
	ua := strings.TrimSpace(meta.UserAgent)
	if ua == "" {
		// Real browsers always send a user agent on fetch.
		return CategoryAutomated, true
	}

	lower := strings.ToLower(ua)
	for _, sig := range botSignatures {
		if strings.Contains(lower, sig.token) {
			return sig.category, true
		}
	}

	client := b.parser.Parse(ua)
	if client.Device.Family == "Spider" {
		return CategoryAutomated, true
	}

	return "", false
}
