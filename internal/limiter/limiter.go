// Ограничение частоты запросов по адресу клиента.
// Счетчики локальны для процесса и не защищают инвариант начисления,
// это делает условное обновление в БД
package daily

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type Rule struct {
	MinInterval time.Duration // минимальный интервал между запросами
	Limit       int           // запросов в окне
	Window      time.Duration
}

type Limiter struct {
	mu      sync.Mutex
	rule    Rule
	entries *lru.Cache // ключ -> []time.Time, при переполнении вытесняются старые ключи
	now     func() time.Time
}

func New(rule Rule, capacity int) (*Limiter, error) {
	cache, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Limiter{rule: rule, entries: cache, now: time.Now}, nil
}

func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Разрешен ли запрос; если нет - через сколько повторить
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := l.recent(key, now)

	if n := len(hits); n > 0 && l.rule.MinInterval > 0 {
		if since := now.Sub(hits[n-1]); since < l.rule.MinInterval {
			l.entries.Add(key, hits)
			return false, l.rule.MinInterval - since
		}
	}
	if l.rule.Limit > 0 && len(hits) >= l.rule.Limit {
		l.entries.Add(key, hits)
		return false, hits[0].Add(l.rule.Window).Sub(now)
	}

	l.entries.Add(key, append(hits, now))
	return true, 0
}

// Удаление ключей без запросов в окне, возвращает кол-во удаленных
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for _, key := range l.entries.Keys() {
		k := key.(string)
		if len(l.recent(k, now)) == 0 {
			l.entries.Remove(k)
			removed++
		}
	}
	return removed
}

func (l *Limiter) Len() int {
	return l.entries.Len()
}

// запросы ключа внутри окна (без обновления позиции в LRU)
func (l *Limiter) recent(key string, now time.Time) []time.Time {
	v, ok := l.entries.Peek(key)
	if !ok {
		return nil
	}
	window := l.rule.Window
	if window < l.rule.MinInterval {
		window = l.rule.MinInterval
	}
	cutoff := now.Add(-window)
	hits := v.([]time.Time)
	recent := make([]time.Time, 0, len(hits)+1)
	for _, t := range hits {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent
}
