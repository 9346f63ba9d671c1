package services

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"fightdeck/db"
	"fightdeck/models"

	"go.mongodb.org/mongo-driver/bson"
)

// memStore is an in-memory db.Store for tests. It interprets the small
// subset of update operators the services actually use.
type memStore struct {
	mu   sync.Mutex
	docs map[string]map[string]bson.M
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]map[string]bson.M{}}
}

func (m *memStore) collection(name string) map[string]bson.M {
	col, ok := m.docs[name]
	if !ok {
		col = map[string]bson.M{}
		m.docs[name] = col
	}
	return col
}

// toDoc roundtrips an arbitrary document through BSON into a plain bson.M.
func toDoc(doc interface{}) bson.M {
	if m, ok := doc.(bson.M); ok && len(m) == 0 {
		return bson.M{}
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(err)
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		panic(err)
	}
	return plain(d).(bson.M)
}

// toValue normalizes a single value (struct, slice, scalar) the same way.
func toValue(v interface{}) interface{} {
	return toDoc(bson.M{"v": v})["v"]
}

// plain recursively rewrites bson.D into bson.M so paths can be walked with
// plain map lookups.
func plain(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.D:
		out := bson.M{}
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.M:
		out := bson.M{}
		for k, val := range t {
			out[k] = plain(val)
		}
		return out
	case bson.A:
		out := make(bson.A, len(t))
		for i, val := range t {
			out[i] = plain(val)
		}
		return out
	case []interface{}:
		out := make(bson.A, len(t))
		for i, val := range t {
			out[i] = plain(val)
		}
		return out
	default:
		return v
	}
}

func decodeDoc(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func getPath(doc bson.M, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	cur := interface{}(doc)
	for _, p := range parts {
		m, ok := cur.(bson.M)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func setPath(doc bson.M, path string, value interface{}) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(bson.M)
		if !ok {
			next = bson.M{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

func asInt(v interface{}) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float64:
		return int64(t)
	default:
		return 0
	}
}

func sameValue(a, b interface{}) bool {
	switch a.(type) {
	case int, int32, int64, float64:
		switch b.(type) {
		case int, int32, int64, float64:
			return asInt(a) == asInt(b)
		}
	}
	return reflect.DeepEqual(a, b)
}

// pathValues resolves a dotted path, fanning out over arrays the way Mongo
// filters do ("achievements.name" yields every element's name).
func pathValues(v interface{}, path string) []interface{} {
	if path == "" {
		return []interface{}{v}
	}
	parts := strings.SplitN(path, ".", 2)
	rest := ""
	if len(parts) == 2 {
		rest = parts[1]
	}
	switch t := v.(type) {
	case bson.M:
		child, ok := t[parts[0]]
		if !ok {
			return nil
		}
		return pathValues(child, rest)
	case bson.A:
		var out []interface{}
		for _, elem := range t {
			out = append(out, pathValues(elem, path)...)
		}
		return out
	default:
		return nil
	}
}

func matchFilter(doc bson.M, filter bson.M) bool {
	for path, cond := range filter {
		values := pathValues(doc, path)
		if condM, ok := cond.(bson.M); ok {
			if nin, ok := condM["$nin"]; ok {
				excluded, _ := nin.(bson.A)
				for _, have := range values {
					for _, bad := range excluded {
						if sameValue(have, bad) {
							return false
						}
					}
				}
				continue
			}
		}
		found := false
		for _, have := range values {
			if sameValue(have, cond) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func applyUpdate(doc bson.M, update bson.M) {
	if set, ok := update["$set"].(bson.M); ok {
		for path, v := range set {
			setPath(doc, path, v)
		}
	}
	if inc, ok := update["$inc"].(bson.M); ok {
		for path, v := range inc {
			cur, _ := getPath(doc, path)
			setPath(doc, path, asInt(cur)+asInt(v))
		}
	}
	if push, ok := update["$push"].(bson.M); ok {
		for path, v := range push {
			arr, _ := getPath(doc, path)
			existing, _ := arr.(bson.A)
			if spec, ok := v.(bson.M); ok {
				if each, ok := spec["$each"].(bson.A); ok {
					existing = append(existing, each...)
					if slice, ok := spec["$slice"]; ok {
						n := int(asInt(slice))
						if n < 0 && len(existing) > -n {
							existing = existing[len(existing)+n:]
						}
					}
					setPath(doc, path, existing)
					continue
				}
			}
			setPath(doc, path, append(existing, v))
		}
	}
}

func (m *memStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.collection(collection)[id]
	if !ok {
		return models.ErrNotFound
	}
	return decodeDoc(doc, out)
}

func (m *memStore) Insert(ctx context.Context, collection, id string, doc interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.collection(collection)
	if _, ok := col[id]; ok {
		return models.ErrAlreadyExists
	}
	d := toDoc(doc)
	d["_id"] = id
	col[id] = d
	return nil
}

func (m *memStore) Merge(ctx context.Context, collection, id string, fields bson.M) (db.MutationResult, error) {
	return m.Update(ctx, collection, id, bson.M{"$set": fields})
}

func (m *memStore) AppendUnique(ctx context.Context, collection, id, field string, value interface{}) (db.MutationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.collection(collection)[id]
	if !ok {
		return db.MutationNotFound, nil
	}
	normalized := toValue(value)
	cur, _ := getPath(doc, field)
	arr, _ := cur.(bson.A)
	for _, have := range arr {
		if sameValue(have, normalized) {
			return db.MutationApplied, nil
		}
	}
	setPath(doc, field, append(arr, normalized))
	return db.MutationApplied, nil
}

func (m *memStore) Increment(ctx context.Context, collection, id, field string, delta int) (db.MutationResult, error) {
	return m.Update(ctx, collection, id, bson.M{"$inc": bson.M{field: delta}})
}

func (m *memStore) SetField(ctx context.Context, collection, id, field string, value interface{}) (db.MutationResult, error) {
	return m.Update(ctx, collection, id, bson.M{"$set": bson.M{field: value}})
}

func (m *memStore) Update(ctx context.Context, collection, id string, update bson.M) (db.MutationResult, error) {
	return m.UpdateGuarded(ctx, collection, bson.M{"_id": id}, update)
}

func (m *memStore) UpdateGuarded(ctx context.Context, collection string, filter, update bson.M) (db.MutationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	normalizedFilter := toDoc(filter)
	normalizedUpdate := toDoc(update)
	for _, id := range m.sortedIDs(collection) {
		doc := m.collection(collection)[id]
		if matchFilter(doc, normalizedFilter) {
			applyUpdate(doc, normalizedUpdate)
			return db.MutationApplied, nil
		}
	}
	return db.MutationNotFound, nil
}

func (m *memStore) Find(ctx context.Context, collection string, filter bson.M, sortBy bson.D, limit int64, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	normalizedFilter := toDoc(filter)
	var matched []bson.M
	for _, id := range m.sortedIDs(collection) {
		doc := m.collection(collection)[id]
		if matchFilter(doc, normalizedFilter) {
			matched = append(matched, doc)
		}
	}

	for i := len(sortBy) - 1; i >= 0; i-- {
		key := sortBy[i].Key
		desc := asInt(sortBy[i].Value) < 0
		sort.SliceStable(matched, func(a, b int) bool {
			av, _ := getPath(matched[a], key)
			bv, _ := getPath(matched[b], key)
			if desc {
				return asInt(av) > asInt(bv)
			}
			return asInt(av) < asInt(bv)
		})
	}
	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}

	outValue := reflect.ValueOf(out).Elem()
	result := reflect.MakeSlice(outValue.Type(), 0, len(matched))
	for _, doc := range matched {
		elem := reflect.New(outValue.Type().Elem())
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	outValue.Set(result)
	return nil
}

func (m *memStore) Rekey(ctx context.Context, collection, oldID, newID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.collection(collection)
	doc, ok := col[oldID]
	if !ok {
		return models.ErrNotFound
	}
	if _, ok := col[newID]; ok {
		return models.ErrAlreadyExists
	}
	doc["_id"] = newID
	col[newID] = doc
	delete(col, oldID)
	return nil
}

func (m *memStore) sortedIDs(collection string) []string {
	ids := make([]string, 0, len(m.collection(collection)))
	for id := range m.collection(collection) {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// fakeCooldown is an in-memory CooldownStore that never expires.
type fakeCooldown struct {
	mu     sync.Mutex
	active map[string]bool
}

func newFakeCooldown() *fakeCooldown {
	return &fakeCooldown{active: map[string]bool{}}
}

func (f *fakeCooldown) Start(ctx context.Context, chatID string, window time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active[chatID] {
		return false, nil
	}
	f.active[chatID] = true
	return true, nil
}

func (f *fakeCooldown) Active(ctx context.Context, chatID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active[chatID], nil
}

func (f *fakeCooldown) reset(chatID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active, chatID)
}

// captureSink records published events for assertions.
type captureSink struct {
	mu     sync.Mutex
	events []models.Event
}

func (s *captureSink) Publish(event models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *captureSink) byType(eventType string) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Event
	for _, e := range s.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func testFighter(id, name string) models.Fighter {
	return models.Fighter{
		ID:         id,
		Email:      id + "@example.com",
		Name:       name,
		Age:        25,
		Location:   "Austin, TX",
		Discipline: models.DisciplineMMA,
		Rank:       "Amateur",
		Photo:      "https://example.com/" + id + ".jpg",
		Rating:     models.InitialRating,
		Likes:      []string{},
		Dislikes:   []string{},
		Chats:      []string{},
		CreatedAt:  time.Now(),
	}
}

func seedFighters(store *memStore, fighters ...models.Fighter) {
	for _, f := range fighters {
		if err := store.Insert(context.Background(), db.UsersCollection, f.ID, f); err != nil {
			panic(err)
		}
	}
}
