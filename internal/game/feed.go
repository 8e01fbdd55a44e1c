package game

// Capacity matches the server's own event ring.
const feedCap = 50

// Feed is the scrolling battle log: server events plus local advisories.
type Feed struct {
	entries []string
}

func NewFeed() *Feed { return &Feed{} }

func (f *Feed) Add(msg string) {
	if msg == "" {
		return
	}
	f.entries = append(f.entries, msg)
	if len(f.entries) > feedCap {
		f.entries = f.entries[len(f.entries)-feedCap:]
	}
}

func (f *Feed) AddBatch(msgs []string) {
	for _, m := range msgs {
		f.Add(m)
	}
}

func (f *Feed) Entries() []string { return f.entries }

// Tail returns the most recent n entries, oldest first.
func (f *Feed) Tail(n int) []string {
	if n >= len(f.entries) {
		return f.entries
	}
	return f.entries[len(f.entries)-n:]
}

func (f *Feed) Clear() { f.entries = nil }
