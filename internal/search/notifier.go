package search

import "go.uber.org/zap"

// Notifier observes traversal progress. Implementations must not block.
type Notifier interface {
	Visiting(p *Page)
	Matched(p *Page, keyword string)
}

type nopNotifier struct{}

func (nopNotifier) Visiting(*Page)        {}
func (nopNotifier) Matched(*Page, string) {}

// LogNotifier reports progress through a zap logger.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Visiting(p *Page) {
	n.log.Debug("about to visit",
		zap.String("address", p.Address()),
		zap.Int("depth", p.Depth()))
}

func (n *LogNotifier) Matched(p *Page, keyword string) {
	n.log.Info("keyword found",
		zap.String("keyword", keyword),
		zap.String("address", p.Address()))
}
