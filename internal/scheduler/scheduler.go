package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"AlphaLens/internal/collector"
	"AlphaLens/internal/interpreter"
	"AlphaLens/internal/model"
	"AlphaLens/internal/notifier"
	"AlphaLens/internal/recorder"
)

// Scheduler manages the daily universe scan and Telegram commands.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Notifier    *notifier.TelegramNotifier
	Recorder    recorder.Recorder
	Interpreter *interpreter.Interpreter // nil when no API key is configured
	Universe    []string
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler over the given symbol universe.
func NewScheduler(ctx context.Context, col *collector.Collector, tn *notifier.TelegramNotifier, rec recorder.Recorder, in *interpreter.Interpreter, universe []string) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   col,
		Notifier:    tn,
		Recorder:    rec,
		Interpreter: in,
		Universe:    universe,
		Ctx:         ctx,
	}
}

// RegisterAll registers the daily scan task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.scanTask); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the daily scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

// scanTask analyzes every symbol in the universe, records each verdict, and
// sends one summary message. Requests are independent; one failed symbol
// never aborts the scan.
func (s *Scheduler) scanTask() {
	runID := uuid.NewString()
	log.Printf("[INFO] running daily scan: run=%s symbols=%d", runID, len(s.Universe))

	var reports []*collector.Report
	failures := make(map[string]error)

	for _, symbol := range s.Universe {
		report, err := s.Collector.Analyze(symbol)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", symbol, err)
			failures[symbol] = err
			continue
		}
		reports = append(reports, report)

		if err := s.Recorder.RecordVerdict(recorder.NewSnapshot(runID, report)); err != nil {
			log.Printf("[ERROR] record verdict for %s: %v", symbol, err)
		}
	}

	s.trySend(notifier.FormatScanSummary(runID, reports, failures))
	log.Printf("[INFO] daily scan finished: run=%s ok=%d failed=%d", runID, len(reports), len(failures))
}

// analyzeOne runs the pipeline for a single symbol and returns the formatted
// report, appending the LLM interpretation when configured.
func (s *Scheduler) analyzeOne(symbol string) string {
	report, err := s.Collector.Analyze(symbol)
	if err != nil {
		return fmt.Sprintf("❌ Analysis failed for %s: %v", symbol, err)
	}

	if err := s.Recorder.RecordVerdict(recorder.NewSnapshot(uuid.NewString(), report)); err != nil {
		log.Printf("[ERROR] record verdict for %s: %v", symbol, err)
	}

	msg := notifier.FormatVerdictReport(report)
	if s.Interpreter != nil {
		if text, err := s.Interpreter.Interpret(s.Ctx, report, 3); err != nil {
			log.Printf("[WARN] interpretation for %s failed: %v", symbol, err)
		} else {
			msg += "\n<b>Interpretation:</b>\n" + text
		}
	}
	return msg
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/scan":
		go s.scanTask()
		return "Scan started."
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL (e.g. /analyze RELIANCE.NS)"
		}
		symbol := strings.ToUpper(fields[1])
		if !model.IsKnownSymbol(symbol) {
			return fmt.Sprintf("Unknown symbol %s. Use /universe to list tracked symbols.", symbol)
		}
		return s.analyzeOne(symbol)
	case "/market":
		ctx, err := s.Collector.Fetcher.FetchMarketContext()
		if err != nil {
			return fmt.Sprintf("❌ Market context fetch failed: %v", err)
		}
		return notifier.FormatMarketContext(ctx)
	case "/universe":
		return "Tracked symbols:\n" + strings.Join(s.Universe, ", ")
	default:
		return "Available commands:\n• /scan\n• /analyze SYMBOL\n• /market\n• /universe"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
