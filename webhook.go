// FILE: louis-log/webhook.go
package louislog

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// Transport posts a JSON body to a webhook URL and returns the response
// status code, or a transport error. The sink treats it as opaque.
type Transport interface {
	Post(url string, body []byte) (int, error)
}

// fasthttpTransport is the default webhook transport.
type fasthttpTransport struct {
	client *fasthttp.Client
}

func newFasthttpTransport() *fasthttpTransport {
	return &fasthttpTransport{
		client: &fasthttp.Client{
			ReadTimeout:  webhookRequestTimeout,
			WriteTimeout: webhookRequestTimeout,
		},
	}
}

func (t *fasthttpTransport) Post(url string, body []byte) (int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := t.client.DoTimeout(req, resp, webhookRequestTimeout); err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

// webhookEmbed is one message unit of an outbound webhook request.
type webhookEmbed struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Color       int           `json:"color"`
	Footer      webhookFooter `json:"footer"`
}

type webhookFooter struct {
	Text string `json:"text"`
}

// webhookPayload is the request body shape the provider expects.
type webhookPayload struct {
	Username    string         `json:"username"`
	Content     any            `json:"content"`
	Embeds      []webhookEmbed `json:"embeds"`
	Attachments []any          `json:"attachments"`
}

// webhookSink accumulates rendered records into an outbound batch, flushes
// at the batch limit, and self-limits on delivery pressure. Delivery is
// best-effort: a failed or suppressed batch is reported once and dropped,
// never retried.
type webhookSink struct {
	mu sync.Mutex

	enabled  bool
	url      string
	discord  bool
	username string

	transport Transport
	limiter   *rate.Limiter
	report    reportFunc
	state     *State

	batch []webhookEmbed
}

func newWebhookSink(cfg WebhookConfig, mainProcess, subProcess string, transport Transport, report reportFunc, state *State) *webhookSink {
	if transport == nil {
		transport = newFasthttpTransport()
	}
	var limiter *rate.Limiter
	if cfg.PostsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.PostsPerMinute)/60.0), int(cfg.PostsPerMinute))
	}
	return &webhookSink{
		enabled:   cfg.Enabled,
		url:       cfg.URL,
		discord:   strings.EqualFold(strings.TrimSpace(cfg.Provider), "discord"),
		username:  mainProcess + "." + subProcess,
		transport: transport,
		limiter:   limiter,
		report:    report,
		state:     state,
	}
}

// active reports whether delivery is configured at all.
func (w *webhookSink) active() bool {
	return w.enabled && w.url != "" && w.discord
}

// submit builds one embed for the record and appends it to the batch. A
// batch at the limit triggers one delivery attempt; a batch past the limit
// is an overflow and is discarded without delivery.
func (w *webhookSink) submit(ts time.Time, level LogLevel, message, dataString, formattedDate string) {
	if !w.active() || level == LevelFatalRateLimited {
		return
	}

	description := ""
	if dataString != "" {
		if len(dataString) > webhookDescriptionLimit {
			description = descriptionPlaceholder
		} else {
			description = "```\n" + dataString + "\n```"
		}
	}

	embed := webhookEmbed{
		Title:       fmt.Sprintf("<%s> [%s] %s", w.username, level, message),
		Description: description,
		Color:       level.embedColor(),
		Footer:      webhookFooter{Text: formattedDate},
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.batch = append(w.batch, embed)

	if len(w.batch) > webhookBatchLimit {
		dropped := len(w.batch)
		w.batch = nil
		w.state.OverflowDrops.Add(uint64(dropped))
		w.report(LevelFatalRateLimited,
			fmt.Sprintf("webhook backlog overflow, discarded %d buffered embeds", dropped), false)
		return
	}

	if len(w.batch) == webhookBatchLimit {
		w.flushLocked()
	}
}

// forceFlush delivers whatever is buffered, even a partial batch. It is
// the shutdown path; the batch is cleared regardless of outcome.
func (w *webhookSink) forceFlush() {
	if !w.active() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.batch) == 0 {
		return
	}
	w.flushLocked()
}

// flushLocked attempts one delivery of the whole batch and clears it. The
// caller holds the mutex. Failures are reported at the internal
// rate-limited level and never retried.
func (w *webhookSink) flushLocked() {
	items := w.batch
	w.batch = nil

	if w.limiter != nil && !w.limiter.Allow() {
		w.state.WebhookSuppressed.Add(uint64(len(items)))
		w.report(LevelFatalRateLimited,
			fmt.Sprintf("webhook delivery suppressed by rate limit, dropped %d embeds", len(items)), false)
		return
	}

	body, err := json.Marshal(webhookPayload{
		Username:    w.username,
		Content:     nil,
		Embeds:      items,
		Attachments: []any{},
	})
	if err != nil {
		w.state.WebhookFailures.Add(1)
		w.report(LevelFatalRateLimited,
			fmt.Sprintf("webhook payload marshal failed: %v", err), false)
		return
	}

	status, err := w.transport.Post(w.url, body)
	switch {
	case err != nil:
		w.state.WebhookFailures.Add(1)
		w.report(LevelFatalRateLimited,
			fmt.Sprintf("webhook delivery failed: %v", err), false)
	case status != webhookSuccessStatus:
		w.state.WebhookFailures.Add(1)
		w.report(LevelFatalRateLimited,
			fmt.Sprintf("webhook delivery rejected with status %d", status), false)
	default:
		w.state.WebhookPosts.Add(1)
	}
}
