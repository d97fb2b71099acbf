package realtime

import (
	"context"
	"log"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
)

// FirebaseStore backs the Store interface with Firebase Realtime Database.
// The database client is created lazily on first use and the attempt is
// memoized: one connection attempt per process, failure logged once.
type FirebaseStore struct {
	app  *firebase.App
	once sync.Once

	client *db.Client
	err    error
}

// NewFirebaseStore wraps an initialised Firebase app. The app's DatabaseURL
// must be configured; connection problems surface on first operation.
func NewFirebaseStore(app *firebase.App) *FirebaseStore {
	return &FirebaseStore{app: app}
}

func (s *FirebaseStore) ensure(ctx context.Context) (*db.Client, error) {
	s.once.Do(func() {
		s.client, s.err = s.app.Database(ctx)
		if s.err != nil {
			log.Printf("realtime: firebase database unavailable: %v", s.err)
		}
	})
	if s.err != nil {
		return nil, ErrUnavailable
	}
	return s.client, nil
}

func (s *FirebaseStore) Ready() bool {
	_, err := s.ensure(context.Background())
	return err == nil
}

func (s *FirebaseStore) Get(ctx context.Context, path string, v any) error {
	client, err := s.ensure(ctx)
	if err != nil {
		return err
	}
	return client.NewRef(path).Get(ctx, v)
}

func (s *FirebaseStore) Set(ctx context.Context, path string, v any) error {
	client, err := s.ensure(ctx)
	if err != nil {
		return err
	}
	return client.NewRef(path).Set(ctx, v)
}

func (s *FirebaseStore) Patch(ctx context.Context, path string, fields map[string]any) error {
	client, err := s.ensure(ctx)
	if err != nil {
		return err
	}
	return client.NewRef(path).Update(ctx, fields)
}

func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	client, err := s.ensure(ctx)
	if err != nil {
		return err
	}
	return client.NewRef(path).Delete(ctx)
}
