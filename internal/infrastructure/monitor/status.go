package monitor

import "time"

type Status struct {
	Store     bool      `json:"store"`
	Identity  bool      `json:"identity"`
	LastCheck time.Time `json:"last_check"`
}
