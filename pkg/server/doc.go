// Package server hosts Quartz applications over HTTP and WebSocket.
//
// A Server owns a root component factory. GET / renders a fresh instance
// to HTML for the first paint. GET /ws starts a live session: the session
// mounts its own instance into an in-memory document, records every
// document mutation as a protocol op, and streams op frames to the client.
// Incoming event frames are dispatched to the document's handlers, the
// session's update queue is flushed, and the resulting ops go back down the
// same connection.
//
//	srv := server.New(func() vdom.Component { return &Counter{} })
//	srv.ListenAndServe(ctx)
//
// Sessions are independent: each has its own document, renderer and update
// queue, so component state never leaks between connections.
package server
