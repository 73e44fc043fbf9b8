package library

import "slices"

// Cached returns the local copy of a list. It may be stale.
func (l *Library) Cached(kind ListKind) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkOwnerLocked()
	return slices.Clone(l.cache[kind])
}

// Contains reports whether the local copy of a list holds movieID
func (l *Library) Contains(kind ListKind, movieID int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkOwnerLocked()
	return slices.ContainsFunc(l.cache[kind], func(e Entry) bool {
		return e.MovieID == movieID
	})
}

// Loaded reports whether a list has been fetched for the current user
func (l *Library) Loaded(kind ListKind) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkOwnerLocked()
	return l.loaded[kind]
}

// Reset drops every local copy
func (l *Library) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetLocked()
}

func (l *Library) resetLocked() {
	l.cache = make(map[ListKind][]Entry)
	l.loaded = make(map[ListKind]bool)
}

// checkOwnerLocked discards the local copies when the signed-in user changed
func (l *Library) checkOwnerLocked() {
	owner := ""
	if u := l.identity.User(); u != nil {
		owner = u.ID
	}
	if owner != l.owner {
		l.resetLocked()
		l.owner = owner
	}
}

func (l *Library) cacheAdd(kind ListKind, entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkOwnerLocked()

	list := l.cache[kind]
	if i := slices.IndexFunc(list, func(e Entry) bool { return e.MovieID == entry.MovieID }); i >= 0 {
		list[i] = entry
		return
	}
	l.cache[kind] = append(list, entry)
}

func (l *Library) cacheRemove(kind ListKind, movieID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkOwnerLocked()

	l.cache[kind] = slices.DeleteFunc(l.cache[kind], func(e Entry) bool {
		return e.MovieID == movieID
	})
}

func (l *Library) cacheReplace(kind ListKind, entries []Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkOwnerLocked()

	l.cache[kind] = slices.Clone(entries)
	l.loaded[kind] = true
}
