// Package emailsink delivers batches of structured log events as email
// messages over SMTP.
//
// The sink is designed to be driven by an external batching host: the host
// owns batch timing, queueing and any retry policy, and hands the sink one
// finite batch at a time via EmitBatch. Each batch becomes exactly one
// outgoing message — the body is the ordered concatenation of every event's
// rendered output, and the subject is rendered from the first event carrying
// the batch's highest severity.
//
// Delivery is transactional per batch: the sink opens a fresh transport
// connection, sends the message, and disconnects, releasing the connection
// on every exit path. A failed batch is reported once on the diagnostics
// logger and returned to the host as an error; the sink itself never
// retries and never panics across the host boundary.
//
// The default transport speaks SMTP through gopkg.in/mail.v2. Alternate
// backends live under transport/ (AWS SES v2 API delivery, plain
// io.Writer output for development).
package emailsink
