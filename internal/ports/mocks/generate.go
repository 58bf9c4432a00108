//go:generate mockgen -source=../broker_client.go      -destination=./mock_broker_client.go      -package=mocks
//go:generate mockgen -source=../order_decoder.go      -destination=./mock_order_decoder.go      -package=mocks
//go:generate mockgen -source=../accounting_writer.go  -destination=./mock_accounting_writer.go  -package=mocks
//go:generate mockgen -source=../redelivery_tracker.go -destination=./mock_redelivery_tracker.go -package=mocks
//go:generate mockgen -source=../logger.go             -destination=./mock_logger.go             -package=mocks
//go:generate mockgen -source=../message_consumer.go   -destination=./mock_message_consumer.go   -package=mocks

package mocks
