package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstDelivery    BookmarkType = "first_delivery"
	BookmarkTrailEstablished BookmarkType = "trail_established"
	BookmarkColonyDecline    BookmarkType = "colony_decline"
	BookmarkFoodExhausted    BookmarkType = "food_exhausted"
	BookmarkSteadySupply     BookmarkType = "steady_supply"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	SimTimeSec  float64      `csv:"sim_time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"sim_time", b.SimTimeSec,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	delivered          bool // any delivery seen so far
	recentAntPeak      int  // peak ant count in recent history
	lastFoodCount      int
	supplyWindowsCount int // consecutive windows with deliveries
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for rolling averages
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFirstDelivery(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		// Trail established: deliveries > 2x rolling average
		if b := bd.checkTrailEstablished(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Colony decline: dropped >30% from recent peak
		if b := bd.checkColonyDecline(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Food exhausted: the last source vanished this window
		if b := bd.checkFoodExhausted(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Steady supply: deliveries in 5 consecutive windows
	if b := bd.checkSteadySupply(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Update history
	bd.addToHistory(stats)

	if stats.Ants > bd.recentAntPeak {
		bd.recentAntPeak = stats.Ants
	}
	bd.lastFoodCount = stats.Food

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkFirstDelivery(stats WindowStats) *Bookmark {
	if bd.delivered || stats.Deliveries == 0 {
		return nil
	}
	bd.delivered = true
	return &Bookmark{
		Type:        BookmarkFirstDelivery,
		Tick:        stats.WindowEndTick,
		SimTimeSec:  stats.SimTimeSec,
		Description: fmt.Sprintf("First %d deliveries brought %.1f food home", stats.Deliveries, stats.Delivered),
	}
}

func (bd *BookmarkDetector) checkTrailEstablished(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Deliveries
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Deliveries) > avg*2.0 && stats.Deliveries >= 3 {
		return &Bookmark{
			Type:        BookmarkTrailEstablished,
			Tick:        stats.WindowEndTick,
			SimTimeSec:  stats.SimTimeSec,
			Description: fmt.Sprintf("%d deliveries is %.1fx average (%.2f)", stats.Deliveries, float64(stats.Deliveries)/avg, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkColonyDecline(stats WindowStats) *Bookmark {
	if bd.recentAntPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Ants)/float64(bd.recentAntPeak)
	if dropPercent > 0.30 && stats.Ants < bd.recentAntPeak-10 {
		// Reset peak after decline
		oldPeak := bd.recentAntPeak
		bd.recentAntPeak = stats.Ants

		return &Bookmark{
			Type:        BookmarkColonyDecline,
			Tick:        stats.WindowEndTick,
			SimTimeSec:  stats.SimTimeSec,
			Description: fmt.Sprintf("Ants declined %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Ants),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkFoodExhausted(stats WindowStats) *Bookmark {
	if bd.lastFoodCount == 0 || stats.Food > 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkFoodExhausted,
		Tick:        stats.WindowEndTick,
		SimTimeSec:  stats.SimTimeSec,
		Description: fmt.Sprintf("Last food source gone, stock at %.1f", stats.Stock),
	}
}

func (bd *BookmarkDetector) checkSteadySupply(stats WindowStats) *Bookmark {
	if stats.Deliveries == 0 {
		bd.supplyWindowsCount = 0
		return nil
	}
	bd.supplyWindowsCount++

	if bd.supplyWindowsCount == 5 { // trigger exactly once per streak
		return &Bookmark{
			Type:        BookmarkSteadySupply,
			Tick:        stats.WindowEndTick,
			SimTimeSec:  stats.SimTimeSec,
			Description: fmt.Sprintf("Deliveries in 5 consecutive windows, stock at %.1f", stats.Stock),
		}
	}

	return nil
}
