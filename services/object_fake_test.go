package services

import "context"

// fakeObjectStore is an in-memory ObjectStore for tests.
type fakeObjectStore struct {
	metadata map[string]map[string]string
	deleted  []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{metadata: map[string]map[string]string{}}
}

func (f *fakeObjectStore) GenerateUploadURL(_ context.Context, key string, _, _ int) (string, error) {
	return "https://uploads.test/" + key, nil
}

func (f *fakeObjectStore) GenerateReadURL(_ context.Context, key string) (string, error) {
	return "https://images.test/" + key, nil
}

func (f *fakeObjectStore) GetObjectMetadata(_ context.Context, key string) (map[string]string, error) {
	meta, ok := f.metadata[key]
	if !ok {
		return nil, ErrNotFound
	}
	return meta, nil
}

func (f *fakeObjectStore) DeleteObject(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}
