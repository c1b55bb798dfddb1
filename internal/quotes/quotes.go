// Package quotes holds the mindfulness quotes shown alongside the daily sip.
package quotes

import "time"

// Quote is a short saying and who said it.
type Quote struct {
	Text   string
	Author string
}

func (q Quote) String() string {
	if q.Author == "" {
		return q.Text
	}
	return q.Text + " — " + q.Author
}

var pool = []Quote{
	{"You don't have to slow time. You just have to notice it.", ""},
	{"The present moment is the only moment available to us, and it is the door to all moments.", "Thich Nhat Hanh"},
	{"Drink your tea slowly and reverently, as if it is the axis on which the world earth revolves.", "Thich Nhat Hanh"},
	{"Wherever you are, be all there.", "Jim Elliot"},
	{"Smile, breathe and go slowly.", "Thich Nhat Hanh"},
	{"The little things? The little moments? They aren't little.", "Jon Kabat-Zinn"},
	{"Nothing is worth more than this day.", "Goethe"},
	{"Begin each day with a small, deliberate act.", ""},
	{"Life is available only in the present moment.", "Thich Nhat Hanh"},
	{"Feelings come and go like clouds in a windy sky. Conscious breathing is my anchor.", "Thich Nhat Hanh"},
	{"Slow down and everything you are chasing will come around and catch you.", "John De Paola"},
	{"The quieter you become, the more you can hear.", "Ram Dass"},
}

// All returns every quote in the pool.
func All() []Quote {
	return pool
}

// Daily returns the quote for t's calendar day. The same quote is returned
// all day and changes at midnight.
func Daily(t time.Time) Quote {
	return pool[t.YearDay()%len(pool)]
}
