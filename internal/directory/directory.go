// Package directory keeps the in-memory mapping from upstream user id to the
// token material and routing metadata obtained during the OAuth handshake.
package directory

import (
	"sync"
	"time"
)

// UserRecord may be partially populated: shard, store URL and prefix can
// arrive as separate writes.
type UserRecord struct {
	UserID            string    `json:"user_id"`
	AccessToken       string    `json:"-"`
	AccessTokenSecret string    `json:"-"`
	Expires           time.Time `json:"expires"`
	Shard             string    `json:"shard"`
	NoteStoreURL      string    `json:"note_store_url"`
	WebAPIURLPrefix   string    `json:"web_api_url_prefix"`
}

// HasUsableToken reports whether the record carries an access token that has
// not expired at now. A zero expiry never expires.
func (u *UserRecord) HasUsableToken(now time.Time) bool {
	if u == nil || u.AccessToken == "" {
		return false
	}
	return u.Expires.IsZero() || now.Before(u.Expires)
}

type Directory struct {
	mu    sync.RWMutex
	users map[string]*UserRecord
	now   func() time.Time
}

func New() *Directory {
	return &Directory{users: make(map[string]*UserRecord), now: time.Now}
}

// AddUser replaces the token material for userID, keeping any routing
// metadata already recorded.
func (d *Directory) AddUser(userID, accessToken, accessTokenSecret string, expires time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec := d.recordLocked(userID)
	rec.AccessToken = accessToken
	rec.AccessTokenSecret = accessTokenSecret
	rec.Expires = expires
}

// Get returns a copy of the record for userID.
func (d *Directory) Get(userID string) (UserRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rec, ok := d.users[userID]
	if !ok {
		return UserRecord{}, false
	}
	return *rec, true
}

// Usable returns the record for userID only when it holds a live token.
func (d *Directory) Usable(userID string) (UserRecord, bool) {
	rec, ok := d.Get(userID)
	if !ok || !rec.HasUsableToken(d.now()) {
		return UserRecord{}, false
	}
	return rec, true
}

func (d *Directory) SetShard(userID, shard string) {
	d.update(userID, func(rec *UserRecord) { rec.Shard = shard })
}

func (d *Directory) SetNoteStoreURL(userID, noteStoreURL string) {
	d.update(userID, func(rec *UserRecord) { rec.NoteStoreURL = noteStoreURL })
}

func (d *Directory) SetWebAPIURLPrefix(userID, prefix string) {
	d.update(userID, func(rec *UserRecord) { rec.WebAPIURLPrefix = prefix })
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

func (d *Directory) update(userID string, fn func(rec *UserRecord)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.recordLocked(userID))
}

func (d *Directory) recordLocked(userID string) *UserRecord {
	rec, ok := d.users[userID]
	if !ok {
		rec = &UserRecord{UserID: userID}
		d.users[userID] = rec
	}
	return rec
}
