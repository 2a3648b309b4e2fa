package command

import (
	"context"
	"fmt"
	"runtime"
	"runtime/metrics"
	"strings"
	"time"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"
)

// Catalog lists the names of the registered commands.
type Catalog interface {
	ListCommands() []string
}

// Debug reports the state of the running bot to administrators.
type Debug struct {
	catalog    Catalog
	storage    string
	started    time.Time
	responder  port.Responder
	authorizer port.Authorizer
	now        func() time.Time
}

func NewDebug(catalog Catalog, storage string, responder port.Responder, authorizer port.Authorizer) *Debug {
	return &Debug{
		catalog:    catalog,
		storage:    storage,
		started:    time.Now(),
		responder:  responder,
		authorizer: authorizer,
		now:        time.Now,
	}
}

func (d *Debug) Schema() domain.CommandSchema {
	return domain.CommandSchema{
		Name:        "debug",
		Description: "Show runtime information about the bot process",
		AdminOnly:   true,
	}
}

const mib = 1 << 20

var memorySamples = []string{
	"/memory/classes/heap/objects:bytes",
	"/memory/classes/total:bytes",
}

func (d *Debug) Respond(ctx context.Context, interaction *domain.Interaction) error {
	ok, err := requireAdmin(ctx, d.responder, d.authorizer, interaction)
	if !ok || err != nil {
		return err
	}

	l := logger(interaction)
	l.Info().Msg("reporting runtime state")

	return d.responder.Reply(ctx, interaction, ephemeral(d.report()))
}

func (d *Debug) report() string {
	samples := make([]metrics.Sample, len(memorySamples))
	for i, name := range memorySamples {
		samples[i].Name = name
	}
	metrics.Read(samples)

	var commands []string
	if d.catalog != nil {
		commands = d.catalog.ListCommands()
	}

	storage := d.storage
	if storage == "" {
		storage = "none"
	}

	var b strings.Builder
	b.WriteString("```\n")
	fmt.Fprintf(&b, "uptime: %s\n", d.now().Sub(d.started).Truncate(time.Second))
	fmt.Fprintf(&b, "commands registered: %d\n", len(commands))
	fmt.Fprintf(&b, "binding storage: %s\n", storage)
	fmt.Fprintf(&b, "goroutines running: %d\n", runtime.NumGoroutine())
	fmt.Fprintf(&b, "heap objects: %.1f MiB\n", float64(sampleBytes(samples[0]))/mib)
	fmt.Fprintf(&b, "memory total: %.1f MiB\n", float64(sampleBytes(samples[1]))/mib)
	fmt.Fprintf(&b, "%s on %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	b.WriteString("```")

	return b.String()
}

func sampleBytes(s metrics.Sample) uint64 {
	if s.Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return s.Value.Uint64()
}
