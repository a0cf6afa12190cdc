package oscdaw

import (
	"slices"

	"github.com/jdginn/fltouch/daw"
)

func (b *Bridge) OnDirty(f func(int)) {
	b.lmu.Lock()
	defer b.lmu.Unlock()
	b.dirty = append(b.dirty, f)
}

func (b *Bridge) OnRefresh(f func(daw.RefreshFlags)) {
	b.lmu.Lock()
	defer b.lmu.Unlock()
	b.refresh = append(b.refresh, f)
}

func (b *Bridge) OnBeat(f func(int)) {
	b.lmu.Lock()
	defer b.lmu.Unlock()
	b.beat = append(b.beat, f)
}

func (b *Bridge) OnWaiting(f func()) {
	b.lmu.Lock()
	defer b.lmu.Unlock()
	b.waiting = append(b.waiting, f)
}

func (b *Bridge) notifyDirty(track int) {
	b.lmu.Lock()
	fs := slices.Clone(b.dirty)
	b.lmu.Unlock()
	for _, f := range fs {
		f(track)
	}
}

func (b *Bridge) notifyRefresh(flags daw.RefreshFlags) {
	b.lmu.Lock()
	fs := slices.Clone(b.refresh)
	b.lmu.Unlock()
	for _, f := range fs {
		f(flags)
	}
}

func (b *Bridge) notifyBeat(v int) {
	b.lmu.Lock()
	fs := slices.Clone(b.beat)
	b.lmu.Unlock()
	for _, f := range fs {
		f(v)
	}
}

func (b *Bridge) notifyWaiting() {
	b.lmu.Lock()
	fs := slices.Clone(b.waiting)
	b.lmu.Unlock()
	for _, f := range fs {
		f()
	}
}
