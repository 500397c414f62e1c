package http

import "strings"

type Header struct {
	Key   string
	Value string
}

// Connection describes where requests go and which static headers they carry.
type Connection interface {
	headers() []Header
	getUrl() string
	verifyCertificate() bool
}

// PlainConnection talks to the clinic API without credentials; the API has no
// session or token model.
type PlainConnection struct {
	url        string
	verifyCert bool
}

func NewPlainConnection(url string, verifyCert bool) *PlainConnection {
	return &PlainConnection{url: strings.TrimRight(url, "/"), verifyCert: verifyCert}
}

func (c *PlainConnection) headers() []Header {
	return []Header{
		{Key: "Content-Type", Value: "application/json"},
		{Key: "Accept", Value: "application/json"},
	}
}

func (c *PlainConnection) getUrl() string {
	return c.url
}

func (c *PlainConnection) verifyCertificate() bool {
	return c.verifyCert
}
