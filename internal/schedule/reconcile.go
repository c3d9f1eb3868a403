package schedule

// WithLogs pairs a scheduled item with every log recorded for it.
type WithLogs[I any, L any] struct {
	Item I
	Logs []L
}

// WithLog pairs a scheduled item with at most one log. Log is nil when nothing matched.
type WithLog[I any, L any] struct {
	Item I
	Log  *L
}

// GroupAll buckets logs by key, keeping the input order inside each bucket.
func GroupAll[K comparable, L any](logs []L, key func(L) K) map[K][]L {
	grouped := make(map[K][]L)
	for _, entry := range logs {
		k := key(entry)
		grouped[k] = append(grouped[k], entry)
	}
	return grouped
}

// GroupFirst keeps only the first log seen for each key.
func GroupFirst[K comparable, L any](logs []L, key func(L) K) map[K]L {
	grouped := make(map[K]L, len(logs))
	for _, entry := range logs {
		k := key(entry)
		if _, exists := grouped[k]; exists {
			continue
		}
		grouped[k] = entry
	}
	return grouped
}

// AttachAll joins items with all of their logs. Items without logs get an empty slice.
func AttachAll[I any, L any, K comparable](items []I, logs []L, itemKey func(I) K, logKey func(L) K) []WithLogs[I, L] {
	grouped := GroupAll(logs, logKey)
	joined := make([]WithLogs[I, L], 0, len(items))
	for _, item := range items {
		matched := grouped[itemKey(item)]
		if matched == nil {
			matched = []L{}
		}
		joined = append(joined, WithLogs[I, L]{Item: item, Logs: matched})
	}
	return joined
}

// AttachFirst joins items with the first matching log in logs order.
func AttachFirst[I any, L any, K comparable](items []I, logs []L, itemKey func(I) K, logKey func(L) K) []WithLog[I, L] {
	grouped := GroupFirst(logs, logKey)
	joined := make([]WithLog[I, L], 0, len(items))
	for _, item := range items {
		pair := WithLog[I, L]{Item: item}
		if entry, ok := grouped[itemKey(item)]; ok {
			matched := entry
			pair.Log = &matched
		}
		joined = append(joined, pair)
	}
	return joined
}
