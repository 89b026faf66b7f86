// Package kafka publishes construction-state change events.
//
// Each insert and each successful flush produces one JSON StateEvent on the
// configured topic, keyed by vehicle ID. The W3C trace context of the request
// travels in the message headers next to eventType and eventId.
//
// # Architecture
//
//   - Publisher interface: PublishStateEvent(ctx, event)
//   - KafkaClient struct: wraps a kafka-go Writer
//   - NewClient constructor: builds the writer, returns *KafkaClient
//   - FX module: provides *KafkaClient and the Publisher interface
//
// Keying by vehicle ID keeps every event of one vehicle on one partition, in
// publish order.
//
// # Direct Usage (Without FX)
//
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "digitaltwin.construction-state",
//	}, tracer, log)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	event := kafka.NewStateEvent(kafka.EventInserted, "WVW1", "fleet", []string{"color"})
//	if err := client.PublishStateEvent(ctx, event); err != nil {
//		return err
//	}
//
// The Propagator argument supplies the trace carrier; *tracer.Tracer
// satisfies it.
//
// # SASL and Compression
//
// Set SASL.Enabled with a Mechanism of PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512
// to authenticate. CompressionCodec selects gzip, snappy, lz4 or zstd; an
// unknown codec fails NewClient.
//
// # Event Format
//
//	{
//	  "id": "6f1c...",
//	  "type": "inserted",
//	  "vehicleId": "WVW1",
//	  "owner": "fleet",
//	  "keys": ["color"],
//	  "occurredAt": "2022-03-11T12:41:35Z"
//	}
package kafka
