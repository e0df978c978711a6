// Package dashboard holds the state a visitor's page owns: which record the detail view
// shows and the chat widget. Each visitor gets one Dashboard; the catalog behind it is shared.
package dashboard

import (
	"fmt"
	"sync"

	"investpro/chat"
	"investpro/customerrors"
	"investpro/models"
	"investpro/search"
)

type Dashboard struct {
	mu       sync.Mutex
	engine   search.SearchEngine
	market   models.MarketOverview
	chat     *chat.Session
	selected *models.Stock
}

func New(engine search.SearchEngine, market models.MarketOverview, session *chat.Session) *Dashboard {
	return &Dashboard{
		engine: engine,
		market: market,
		chat:   session,
	}
}

// Visible is the list view: the catalog filtered and ordered for q.
func (d *Dashboard) Visible(q search.Query) []models.Stock {
	return d.engine.Search(q)
}

func (d *Dashboard) Sectors() []string {
	return d.engine.Sectors()
}

func (d *Dashboard) Market() models.MarketOverview {
	return d.market
}

// Select opens the detail view on the record with the given id.
func (d *Dashboard) Select(id string) (models.Stock, error) {
	stock := d.engine.GetByID(id)
	if stock == nil {
		return models.Stock{}, fmt.Errorf("%w: id %q", customerrors.ErrStockNotFound, id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = stock
	return *stock, nil
}

func (d *Dashboard) Selected() (models.Stock, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selected == nil {
		return models.Stock{}, false
	}
	return *d.selected, true
}

// Dismiss closes the detail view. Closing an already closed view is fine.
func (d *Dashboard) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = nil
}

func (d *Dashboard) ToggleChat() bool {
	return d.chat.Toggle()
}

func (d *Dashboard) ChatOpen() bool {
	return d.chat.Expanded()
}

func (d *Dashboard) Chat() *chat.Session {
	return d.chat
}

func (d *Dashboard) Close() {
	d.Dismiss()
	d.chat.Close()
}
