// Package presenter drives the saved routes list independently of any UI
// toolkit. A View renders the State it is handed and forwards user input
// back as Actions.
package presenter

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/sirupsen/logrus"

	"routesync/internal/client"
	"routesync/internal/models/response_models"
)

const (
	MsgSignInRequired = "You need to sign in to view your saved routes."
	MsgRouteDeleted   = "Route deleted"
	MsgDeleteFailed   = "Failed to delete the route"

	PathNewRoute = "/new"
	PathSignIn   = "/sign-in"
)

// RouteSource is the data access the presenter needs. *client.Client
// satisfies it.
type RouteSource interface {
	List(ctx context.Context) ([]response_models.SavedRouteResponse, error)
	Delete(ctx context.Context, id string) error
}

// View receives every state change and side effect. Calls are serialized
// and made from the presenter's goroutines; a View must not call Dispatch
// from inside them.
type View interface {
	Render(State)
	Notify(Notification)
	Navigate(path string)
}

type Action interface {
	isAction()
}

type (
	Refresh           struct{}
	UseRoute          struct{ ID string }
	OpenDeleteConfirm struct{ ID string }
	CancelDelete      struct{}
	ConfirmDelete     struct{}
	CreateNew         struct{}
	SignIn            struct{}
)

func (Refresh) isAction()           {}
func (UseRoute) isAction()          {}
func (OpenDeleteConfirm) isAction() {}
func (CancelDelete) isAction()      {}
func (ConfirmDelete) isAction()     {}
func (CreateNew) isAction()         {}
func (SignIn) isAction()            {}

type Presenter struct {
	source RouteSource
	view   View
	log    *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// mu guards the fields below. viewMu is taken before mu is released so
	// that the view sees changes in the order they were made.
	mu         sync.Mutex
	viewMu     sync.Mutex
	state      State
	routes     []response_models.SavedRouteResponse
	generation uint64
	deleting   map[string]bool
	closed     bool
}

func New(source RouteSource, view View, log *logrus.Logger) *Presenter {
	ctx, cancel := context.WithCancel(context.Background())
	return &Presenter{
		source:   source,
		view:     view,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		state:    State{Status: StatusLoading, Cards: []Card{}},
		deleting: make(map[string]bool),
	}
}

// Activate starts the first load.
func (p *Presenter) Activate() {
	p.Dispatch(Refresh{})
}

func (p *Presenter) Dispatch(action Action) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	switch a := action.(type) {
	case Refresh:
		p.startLoadLocked()
	case UseRoute:
		route, ok := p.findLocked(a.ID)
		if !ok {
			p.mu.Unlock()
			return
		}
		p.navigateLocked(PathNewRoute + "?start=" + url.QueryEscape(route.Start) + "&goal=" + url.QueryEscape(route.Goal))
		return
	case OpenDeleteConfirm:
		if _, ok := p.findLocked(a.ID); !ok || p.deleting[a.ID] {
			p.mu.Unlock()
			return
		}
		p.state.ConfirmingDelete = a.ID
		p.renderLocked()
		return
	case CancelDelete:
		if p.state.ConfirmingDelete == "" {
			p.mu.Unlock()
			return
		}
		p.state.ConfirmingDelete = ""
		p.renderLocked()
		return
	case ConfirmDelete:
		p.startDeleteLocked()
	case CreateNew:
		p.navigateLocked(PathNewRoute)
		return
	case SignIn:
		p.navigateLocked(PathSignIn)
		return
	default:
		p.log.WithField("action", action).Warn("presenter: unknown action ignored")
		p.mu.Unlock()
	}
}

// State returns a copy of the current state.
func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Close stops delivering results to the view. Requests in flight are
// cancelled and whatever they return is dropped.
func (p *Presenter) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
}

// Wait blocks until every request the presenter started has finished.
func (p *Presenter) Wait() {
	p.wg.Wait()
}

// startLoadLocked releases mu.
func (p *Presenter) startLoadLocked() {
	p.generation++
	gen := p.generation
	p.state.Status = StatusLoading
	p.state.Failure = FailureNone
	p.state.Message = ""
	p.state.CanSignIn = false
	p.state.Empty = false
	p.wg.Add(1)
	p.renderLocked()

	go func() {
		defer p.wg.Done()
		routes, err := p.source.List(p.ctx)
		p.finishLoad(gen, routes, err)
	}()
}

func (p *Presenter) finishLoad(gen uint64, routes []response_models.SavedRouteResponse, err error) {
	p.mu.Lock()
	if p.closed || gen != p.generation {
		p.mu.Unlock()
		return
	}

	if err != nil {
		p.state.Status = StatusFailed
		if errors.Is(err, client.ErrUnauthenticated) {
			p.state.Failure = FailureAuthRequired
			p.state.Message = MsgSignInRequired
			p.state.CanSignIn = true
		} else {
			p.log.WithError(err).Warn("presenter: loading saved routes failed")
			p.state.Failure = FailureOther
			p.state.Message = err.Error()
		}
		note := Notification{Title: "Error", Message: p.state.Message, Destructive: true}
		p.renderLocked()
		p.notify(note)
		return
	}

	p.routes = routes
	p.state.Status = StatusLoaded
	p.rebuildCardsLocked()
	p.renderLocked()
}

// startDeleteLocked releases mu.
func (p *Presenter) startDeleteLocked() {
	id := p.state.ConfirmingDelete
	p.state.ConfirmingDelete = ""
	if id == "" || p.deleting[id] {
		p.renderLocked()
		return
	}
	p.deleting[id] = true
	p.rebuildCardsLocked()
	p.wg.Add(1)
	p.renderLocked()

	go func() {
		defer p.wg.Done()
		err := p.source.Delete(p.ctx, id)
		p.finishDelete(id, err)
	}()
}

func (p *Presenter) finishDelete(id string, err error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	delete(p.deleting, id)

	var note Notification
	if err != nil {
		p.log.WithError(err).WithField("route_id", id).Warn("presenter: delete failed")
		note = Notification{Title: "Error", Message: MsgDeleteFailed, Destructive: true}
	} else {
		// A refresh may have already replaced the collection; drop the id
		// from whatever is displayed now.
		kept := p.routes[:0:0]
		for _, r := range p.routes {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		p.routes = kept
		note = Notification{Title: "Success", Message: MsgRouteDeleted}
	}
	p.rebuildCardsLocked()
	p.renderLocked()
	p.notify(note)
}

func (p *Presenter) findLocked(id string) (response_models.SavedRouteResponse, bool) {
	for _, r := range p.routes {
		if r.ID == id {
			return r, true
		}
	}
	return response_models.SavedRouteResponse{}, false
}

func (p *Presenter) rebuildCardsLocked() {
	cards := make([]Card, 0, len(p.routes))
	for _, r := range p.routes {
		card := newCard(r)
		card.Deleting = p.deleting[r.ID]
		cards = append(cards, card)
	}
	p.state.Cards = cards
	p.state.Empty = p.state.Status == StatusLoaded && len(cards) == 0
}

func (p *Presenter) snapshotLocked() State {
	s := p.state
	s.Cards = make([]Card, len(p.state.Cards))
	copy(s.Cards, p.state.Cards)
	return s
}

// renderLocked hands the current state to the view and releases mu.
func (p *Presenter) renderLocked() {
	s := p.snapshotLocked()
	p.viewMu.Lock()
	p.mu.Unlock()
	defer p.viewMu.Unlock()
	p.view.Render(s)
}

// navigateLocked releases mu.
func (p *Presenter) navigateLocked(path string) {
	p.viewMu.Lock()
	p.mu.Unlock()
	defer p.viewMu.Unlock()
	p.view.Navigate(path)
}

func (p *Presenter) notify(n Notification) {
	p.viewMu.Lock()
	defer p.viewMu.Unlock()
	p.view.Notify(n)
}
