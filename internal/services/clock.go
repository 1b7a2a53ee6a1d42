package services

import "time"

// startOfDay возвращает локальную полночь суток, содержащих t
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// nextMidnight возвращает ближайшую полночь после t (конец текущих суток)
func nextMidnight(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1)
}
