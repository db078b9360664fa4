// Package registry persists named histograms in a SQLite database, using
// mdhist's binary serialization format (mdhist.Encode/Decode) as the
// on-disk blob. It is the "save a snapshot, reload it later" companion
// to the otherwise I/O-free histogram engine.
package registry

import (
	"database/sql"
	"slices"

	_ "modernc.org/sqlite"

	"github.com/torlangballe/mdhist"
	"github.com/torlangballe/mdhist/zdict"
	"github.com/torlangballe/mdhist/zerrors"
	"github.com/torlangballe/mdhist/zjson"
	"github.com/torlangballe/mdhist/zlog"
	"github.com/torlangballe/mdhist/zslice"
	"github.com/torlangballe/mdhist/zstr"
)

// Store is a SQLite-backed table of name -> serialized histogram. The
// zero value is not usable, use Open.
type Store struct {
	db    *sql.DB
	names []string // cached listing, kept in sync by Save/Delete
}

// Open opens (creating if necessary) a SQLite database at path and
// ensures its histograms table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeError(zdict.Dict{"path": path}, "opening registry database:", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS histograms (
		name TEXT PRIMARY KEY,
		blob BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, storeError(zdict.Dict{"path": path}, "creating histograms table:", err)
	}
	s := &Store{db: db}
	if err := s.reloadNames(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) reloadNames() error {
	rows, err := s.db.Query(`SELECT name FROM histograms ORDER BY name`)
	if err != nil {
		return storeError(zdict.Dict{}, "listing histograms:", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return storeError(zdict.Dict{}, "scanning histogram name:", err)
		}
		names = append(names, name)
	}
	s.names = names
	return rows.Err()
}

// Save upserts h under name, using mdhist's binary encoding. If name is
// empty, a fresh UUID is generated and returned as the name the
// histogram was actually saved under.
func (s *Store) Save(name string, h *mdhist.Histogram) (string, error) {
	if name == "" {
		name = zstr.GenerateUUID()
	}
	blob := h.Encode()
	if _, err := s.db.Exec(`INSERT INTO histograms (name, blob) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET blob = excluded.blob`, name, blob); err != nil {
		return "", storeError(zdict.Dict{"name": name}, "saving histogram:", err)
	}
	if !slices.Contains(s.names, name) {
		s.names = append(s.names, name)
		slices.Sort(s.names)
	}
	return name, nil
}

// Load reads back the histogram saved under name.
func (s *Store) Load(name string) (*mdhist.Histogram, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT blob FROM histograms WHERE name = ?`, name).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, notFoundError(zdict.Dict{"name": name}, "no histogram saved under name:", name)
	}
	if err != nil {
		return nil, storeError(zdict.Dict{"name": name}, "loading histogram:", err)
	}
	return mdhist.Decode(blob)
}

// Delete removes the histogram saved under name. It is not an error to
// delete a name that was never saved.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec(`DELETE FROM histograms WHERE name = ?`, name); err != nil {
		return storeError(zdict.Dict{"name": name}, "deleting histogram:", err)
	}
	for i, n := range s.names {
		if n == name {
			if err := zslice.RemoveAt(&s.names, i); err != nil {
				return storeError(zdict.Dict{"name": name}, "updating name cache after delete:", err)
			}
			break
		}
	}
	return nil
}

// List returns every name currently saved, in ascending order.
func (s *Store) List() []string {
	return append([]string(nil), s.names...)
}

// Metadata is a human-readable summary of a saved histogram's shape,
// exported as a JSON sidecar alongside (not instead of) the binary blob.
type Metadata struct {
	Name  string     `json:"name"`
	State string     `json:"state"`
	Axes  []AxisInfo `json:"axes"`
}

// AxisInfo describes one axis of a saved histogram in the metadata
// sidecar: enough to know the shape without decoding the binary blob.
type AxisInfo struct {
	Kind   string `json:"kind"`
	Label  string `json:"label,omitempty"`
	Len    int    `json:"len"`
	UOflow bool   `json:"uoflow"`
}

// ExportMetadata writes name's axis shape and storage state as JSON to
// fpath, via zjson.MarshalToFile. This is a sibling to the binary
// blob, not a replacement for it: the metadata alone cannot reconstruct
// cell contents.
func (s *Store) ExportMetadata(name, fpath string) error {
	h, err := s.Load(name)
	if err != nil {
		return err
	}
	meta := Metadata{Name: name, State: h.State().String()}
	for i := 0; i < h.Dim(); i++ {
		a, err := h.Axis(i)
		if err != nil {
			return err
		}
		meta.Axes = append(meta.Axes, AxisInfo{
			Kind:   a.Kind().String(),
			Label:  a.Label(),
			Len:    a.Len(),
			UOflow: a.UOflow(),
		})
	}
	if err := zjson.MarshalToFile(meta, fpath); err != nil {
		return storeError(zdict.Dict{"name": name, "path": fpath}, "exporting metadata:", err)
	}
	return nil
}

func storeError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "domain"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}

func notFoundError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "domain"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}
