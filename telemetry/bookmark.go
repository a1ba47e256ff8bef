package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkShipDown      BookmarkType = "ship_down"
	BookmarkRoomCleared   BookmarkType = "room_cleared"
	BookmarkKillStreak    BookmarkType = "kill_streak"
	BookmarkPoolExhausted BookmarkType = "pool_exhausted"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType
	Tick        uint64
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
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

	last    WindowStats
	hasLast bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for kill streak detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.hasLast {
		if b := bd.checkShipDown(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkRoomCleared(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkKillStreak(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	if b := bd.checkPoolExhausted(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	bd.last = stats
	bd.hasLast = true

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

func (bd *BookmarkDetector) checkShipDown(stats WindowStats) *Bookmark {
	if bd.last.ShipShield <= 0 || stats.ShipShield > 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkShipDown,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Ship shield depleted after %.1f damage this window", stats.ShipDamage),
	}
}

func (bd *BookmarkDetector) checkRoomCleared(stats WindowStats) *Bookmark {
	if bd.last.LiveBaddies == 0 || stats.LiveBaddies > 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkRoomCleared,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("All %d baddies destroyed", bd.last.LiveBaddies),
	}
}

// checkKillStreak fires when kills exceed twice the rolling average.
func (bd *BookmarkDetector) checkKillStreak(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 2 || stats.BaddiesKilled < 3 {
		return nil
	}

	var totalKills int
	for _, h := range history {
		totalKills += h.BaddiesKilled
	}
	avg := float64(totalKills) / float64(len(history))

	if float64(stats.BaddiesKilled) > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkKillStreak,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d kills against an average of %.1f", stats.BaddiesKilled, avg),
		}
	}

	return nil
}

// checkPoolExhausted fires on the first window with spawn failures after one
// without.
func (bd *BookmarkDetector) checkPoolExhausted(stats WindowStats) *Bookmark {
	if stats.SpawnFailures == 0 || (bd.hasLast && bd.last.SpawnFailures > 0) {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPoolExhausted,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d spawns failed on a full pool", stats.SpawnFailures),
	}
}
