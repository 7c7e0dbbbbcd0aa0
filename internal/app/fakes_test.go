package app

import (
	"context"
	"errors"
	"sync"

	"homework_status_bot/internal/domain/delivery"
)

type fetchResult struct {
	payload any
	err     error
}

// fakeAPIClient returns queued results in order and repeats the last one.
type fakeAPIClient struct {
	results []fetchResult
	cursors []int64
}

func (f *fakeAPIClient) Fetch(_ context.Context, cursor int64) (any, error) {
	f.cursors = append(f.cursors, cursor)
	if len(f.results) == 0 {
		return nil, errors.New("no result queued")
	}
	r := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return r.payload, r.err
}

type sentMessage struct {
	chatID string
	text   string
}

type fakeTelegram struct {
	mu    sync.Mutex
	sent  []sentMessage
	err   error
	panic bool
}

func (f *fakeTelegram) SendMessage(chatID string, text string) error {
	if f.panic {
		panic("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeTelegram) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.text)
	}
	return out
}

type fakeJournal struct {
	records []*delivery.Record
	err     error
}

func (f *fakeJournal) Save(_ context.Context, rec *delivery.Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

// decoded builds a payload the way the API client would produce it.
func decoded(items ...map[string]any) map[string]any {
	list := make([]any, 0, len(items))
	for _, it := range items {
		list = append(list, it)
	}
	return map[string]any{"homeworks": list}
}
