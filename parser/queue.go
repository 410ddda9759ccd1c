package parser

// queueItem is either a token or a parse error, never both.
type queueItem struct {
	token *Token
	err   *ParseError
}

// tokenQueue holds emitted items until the caller pulls them. A single
// transition may emit several items (an error followed by its token, or a
// flushed temporary buffer) while callers receive one per pull.
type tokenQueue struct {
	items []queueItem
}

func (q *tokenQueue) pushToken(t *Token) {
	q.items = append(q.items, queueItem{token: t})
}

func (q *tokenQueue) pushError(e *ParseError) {
	q.items = append(q.items, queueItem{err: e})
}

func (q *tokenQueue) pop() (queueItem, bool) {
	if len(q.items) == 0 {
		return queueItem{}, false
	}
	item := q.items[0]
	q.items[0] = queueItem{}
	q.items = q.items[1:]
	return item, true
}

func (q *tokenQueue) len() int {
	return len(q.items)
}
