//go:generate mockgen -source=../broker_client.go -destination=./mock_reader.go -package=mocks

package mocks
