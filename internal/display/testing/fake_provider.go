// Package testing provides test doubles for the display package.
package testing

import (
	"context"
	"sync"

	"github.com/rileyhilliard/mosdef/internal/display"
)

// ApplyCall records a call to ApplyRotation.
type ApplyCall struct {
	ID       string
	Rotation display.Rotation
	Width    int
	Height   int
}

// FakeProvider serves a fixed inventory and records rotations.
// Successful rotations are reflected in later Enumerate calls.
type FakeProvider struct {
	mu sync.Mutex

	Displays     []display.Display
	EnumerateErr error

	// FailIDs maps display IDs to the error ApplyRotation returns for them.
	FailIDs map[string]error

	Calls []ApplyCall
}

// NewFakeProvider creates a provider over the given displays, assigning
// IDs and path keys the same way real providers do.
func NewFakeProvider(displays ...display.Display) *FakeProvider {
	return &FakeProvider{
		Displays: display.Assign(displays),
		FailIDs:  make(map[string]error),
	}
}

// Enumerate returns a copy of the current inventory.
func (f *FakeProvider) Enumerate(ctx context.Context) ([]display.Display, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.EnumerateErr != nil {
		return nil, f.EnumerateErr
	}
	out := make([]display.Display, len(f.Displays))
	copy(out, f.Displays)
	return out, nil
}

// ApplyRotation records the call and updates the stored display unless
// the display is configured to fail.
func (f *FakeProvider) ApplyRotation(ctx context.Context, d display.Display, r display.Rotation, width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, ApplyCall{ID: d.ID, Rotation: r, Width: width, Height: height})

	if err, ok := f.FailIDs[d.ID]; ok {
		return err
	}
	for i := range f.Displays {
		if f.Displays[i].DevicePath == d.DevicePath {
			f.Displays[i].Rotation = r
			f.Displays[i].Width = width
			f.Displays[i].Height = height
		}
	}
	return nil
}

// SetFail makes ApplyRotation fail for the given display ID.
func (f *FakeProvider) SetFail(id string, err error) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailIDs[id] = err
	return f
}

// ClearFail removes a configured failure.
func (f *FakeProvider) ClearFail(id string) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.FailIDs, id)
	return f
}

// CallCount returns the number of ApplyRotation calls.
func (f *FakeProvider) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// Get returns the stored display with the given ID.
func (f *FakeProvider) Get(id string) (display.Display, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return display.FindByID(f.Displays, id)
}

// Monitor is a shorthand constructor for test inventories.
func Monitor(name, path string, conn display.ConnectionType, x int, rot display.Rotation, w, h int) display.Display {
	return display.Display{
		Name:       name,
		DevicePath: path,
		Connection: conn,
		X:          x,
		Rotation:   rot,
		Width:      w,
		Height:     h,
	}
}
