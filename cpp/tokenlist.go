package cpp

import "container/list"

type tokenList struct {
	l *list.List
}

func newTokenList() *tokenList {
	return &tokenList{list.New()}
}

func (tl *tokenList) isEmpty() bool {
	return tl.l.Len() == 0
}

func (tl *tokenList) popFront() *Token {
	if tl.isEmpty() {
		panic("internal error")
	}
	return tl.l.Remove(tl.l.Front()).(*Token)
}

func (tl *tokenList) prepend(tok *Token) {
	tl.l.PushFront(tok)
}

func (tl *tokenList) clear() {
	tl.l.Init()
}
