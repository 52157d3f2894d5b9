package stream

// Headers is the fixed set of HTTP header pairs for an endless GIF
// response: GIF content type, every buffering and caching knob off, and
// permissive CORS for read-only embedding.
var Headers = [...][2]string{
	{"Content-Type", "image/gif"},
	{"Content-Transfer-Encoding", "binary"},
	{"Cache-Control", "no-cache"},
	{"Cache-Control", "no-store"},
	{"Cache-Control", "no-transform"},
	{"Expires", "0"},
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET"},
}
