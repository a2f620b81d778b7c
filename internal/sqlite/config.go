package sqlite

import (
	"net/url"
	"strings"

	"github.com/teenjuna/lifo/internal"
)

const (
	memory = ":memory:"
)

type Config struct {
	file    string
	durable bool
}

type ConfigFunc = func(c *Config)

// File sets the path of the database file. ":memory:" keeps the database in memory until the
// storage is closed.
func (c *Config) File(file string) {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	c.file = file
}

// Durable makes every commit wait until the data reaches the disk.
func (c *Config) Durable(durable bool) {
	c.durable = durable
}

func (c *Config) dsn() string {
	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", "5000") // 5s
	params.Add("_foreign_keys", "on")

	file := c.file
	if file == memory {
		// Every in-memory storage gets its own shared-cache database.
		file = "file:" + internal.GenerateID()
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		if c.durable {
			params.Add("_sync", "full")
		} else {
			params.Add("_sync", "normal")
		}
	}

	return file + "?" + params.Encode()
}
