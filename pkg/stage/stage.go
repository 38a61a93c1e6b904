package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/google/uuid"
)

var (
	// ErrActorExists is returned when a document declares an actor name that
	// is already on stage.
	ErrActorExists = errors.New("actor already on stage")

	// ErrNoRoot is returned when ticking an actor without a root node.
	ErrNoRoot = errors.New("actor has no root node")

	// ErrNoSource is returned by LoadKey when the stage has no document source.
	ErrNoSource = errors.New("stage has no document source")
)

// Document describes one loaded document.
type Document struct {
	Handle   string    `json:"handle"`
	Key      string    `json:"key,omitempty"`
	Actors   []string  `json:"actors"`
	Objects  int       `json:"objects"`
	LoadedAt time.Time `json:"loaded_at"`
}

// ActorInfo is a snapshot of one actor on stage.
type ActorInfo struct {
	Name       string        `json:"name"`
	ID         string        `json:"id"`
	Document   string        `json:"document"`
	Root       string        `json:"root,omitempty"`
	Ticks      int           `json:"ticks"`
	LastStatus domain.Status `json:"last_status,omitempty"`
}

// entry holds one actor and the mutex serializing its ticks.
type entry struct {
	mu    sync.Mutex
	actor *tree.Actor
	doc   string
	ticks int
	last  domain.Status
}

// Stage orchestrates actor access, ensuring safe concurrent ticking.
type Stage struct {
	loader  *loader.Loader
	source  ports.DocumentSource
	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger

	mu     sync.RWMutex
	actors map[string]*entry
	docs   map[string]*Document
}

// Option configures the Stage.
type Option func(*Stage)

// WithSource sets where LoadKey reads documents from.
func WithSource(source ports.DocumentSource) Option {
	return func(s *Stage) {
		s.source = source
	}
}

// WithLocker enables distributed locking of ticks.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(s *Stage) {
		s.locker = locker
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Stage.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stage) {
		s.logger = logger
	}
}

// New creates a Stage building documents with l.
func New(l *loader.Loader, opts ...Option) *Stage {
	s := &Stage{
		loader:  l,
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
		actors:  make(map[string]*entry),
		docs:    make(map[string]*Document),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the configured document source, or nil.
func (s *Stage) Source() ports.DocumentSource { return s.source }

// Load builds text and puts every actor it declares on stage. Nothing is
// added when the document fails to load or an actor name is taken.
func (s *Stage) Load(ctx context.Context, text string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := s.loader.Load(text)
	if err != nil {
		return nil, err
	}
	return s.add(res, "")
}

// LoadKey reads a document from the configured source and loads it.
func (s *Stage) LoadKey(ctx context.Context, key string) (*Document, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	text, err := s.source.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	res, err := s.loader.Load(text)
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", key, err)
	}
	return s.add(res, key)
}

func (s *Stage) add(res *loader.Result, key string) (*Document, error) {
	doc := &Document{
		Handle:   uuid.NewString(),
		Key:      key,
		Objects:  res.Len(),
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	actors := res.Actors()
	seen := make(map[string]bool, len(actors))
	for _, a := range actors {
		if _, taken := s.actors[a.Name()]; taken || seen[a.Name()] {
			return nil, fmt.Errorf("%w: %q", ErrActorExists, a.Name())
		}
		seen[a.Name()] = true
	}
	for _, a := range actors {
		s.actors[a.Name()] = &entry{actor: a, doc: doc.Handle}
		doc.Actors = append(doc.Actors, a.Name())
	}
	s.docs[doc.Handle] = doc

	s.logger.Info("document loaded", "handle", doc.Handle, "key", key, "actors", len(doc.Actors))
	cp := *doc
	return &cp, nil
}

// Unload removes a document and its actors.
func (s *Stage) Unload(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[handle]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, handle)
	}
	for _, name := range doc.Actors {
		delete(s.actors, name)
	}
	delete(s.docs, handle)
	s.logger.Info("document unloaded", "handle", handle)
	return nil
}

func (s *Stage) lookup(name string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.actors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrActorNotFound, name)
	}
	return e, nil
}

// WithActor runs fn while holding the tick lock of the named actor.
func (s *Stage) WithActor(ctx context.Context, name string, fn func(*tree.Actor) error) error {
	e, err := s.lookup(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, "actor:"+name, s.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				s.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"actor", name,
					"err", err,
				)
			}
		}()
	}

	return fn(e.actor)
}

// Tick advances the named actor by one tick.
func (s *Stage) Tick(ctx context.Context, name string) (domain.Status, error) {
	e, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	var status domain.Status
	err = s.WithActor(ctx, name, func(a *tree.Actor) error {
		st, ok := a.Execute()
		if !ok {
			return fmt.Errorf("%w: %q", ErrNoRoot, name)
		}
		status = st
		e.ticks++
		e.last = st
		return nil
	})
	return status, err
}

// Actor returns the named actor. Callers must tick it through Tick or
// WithActor.
func (s *Stage) Actor(name string) (*tree.Actor, error) {
	e, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.actor, nil
}

// Info returns a snapshot of the named actor.
func (s *Stage) Info(name string) (ActorInfo, error) {
	e, err := s.lookup(name)
	if err != nil {
		return ActorInfo{}, err
	}
	return e.info(name), nil
}

// Actors returns a snapshot of every actor on stage, sorted by name.
func (s *Stage) Actors() []ActorInfo {
	s.mu.RLock()
	names := make([]string, 0, len(s.actors))
	entries := make(map[string]*entry, len(s.actors))
	for name, e := range s.actors {
		names = append(names, name)
		entries[name] = e
	}
	s.mu.RUnlock()

	sort.Strings(names)
	out := make([]ActorInfo, 0, len(names))
	for _, name := range names {
		out = append(out, entries[name].info(name))
	}
	return out
}

// Documents returns the loaded documents, oldest first.
func (s *Stage) Documents() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0, len(s.docs))
	for _, d := range s.docs {
		cp := *d
		cp.Actors = append([]string(nil), d.Actors...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LoadedAt.Equal(out[j].LoadedAt) {
			return out[i].Handle < out[j].Handle
		}
		return out[i].LoadedAt.Before(out[j].LoadedAt)
	})
	return out
}

func (e *entry) info(name string) ActorInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	info := ActorInfo{
		Name:       name,
		ID:         e.actor.ID(),
		Document:   e.doc,
		Ticks:      e.ticks,
		LastStatus: e.last,
	}
	if root := e.actor.RootNode(); root != nil {
		info.Root = root.ID()
	}
	return info
}
