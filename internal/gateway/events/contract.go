//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_test
package events

type producer interface {
	SendMessage(topic string, key, value []byte) error
}
