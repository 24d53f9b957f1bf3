// Package checkout hands the browser to the external payment
// collaborator and recognizes its return. The payment page itself is
// not ours; we only persist before leaving and arm the export on a
// successful return.
package checkout

import (
	"context"
	"log"
	"net/url"

	"github.com/jonathan/cv-studio/internal/session"
)

// successValue is the query value the payment collaborator sets on
// redirect back when the charge went through.
const (
	paymentParam = "payment"
	successValue = "success"
)

// Handoff drives the checkout round trip for a session.
type Handoff struct {
	sess        *session.Session
	checkoutURL string
}

// New returns a handoff pointing at the external checkout page.
func New(sess *session.Session, checkoutURL string) *Handoff {
	return &Handoff{sess: sess, checkoutURL: checkoutURL}
}

// Begin persists the current document and returns the URL the caller
// should redirect to. The document is flushed first so that nothing
// typed since the last mutation is lost across the external page.
func (h *Handoff) Begin(ctx context.Context) string {
	h.sess.Persist(ctx)
	log.Printf("checkout: handing off to %s", h.checkoutURL)
	return h.checkoutURL
}

// HandleReturn inspects the query string of the return visit. A
// payment=success flag arms the export trigger; anything else is a
// cancelled or failed checkout and leaves the session untouched. The
// caller is expected to drop the query string from the visible
// location afterwards, so the one-shot behavior lives in
// Session.ConsumeExport.
func (h *Handoff) HandleReturn(query url.Values) bool {
	if query.Get(paymentParam) != successValue {
		return false
	}
	h.sess.ArmExport()
	log.Printf("checkout: payment confirmed, export armed")
	return true
}
