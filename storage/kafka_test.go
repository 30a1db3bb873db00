package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/janelia-flyem/downsample/dvid"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
)

func testEvent() *TileEvent {
	return &TileEvent{
		JobID:       "3f0c2a",
		Input:       "gs://bucket/full",
		Output:      "gs://bucket/tile0",
		Split:       0,
		TotalSplits: 4,
		Index:       []int{0, 0, 0},
		Size:        []int{50, 50, 13},
		ShrunkSize:  []int{50, 50, 50},
		Label:       true,
		ElapsedMs:   1234,
	}
}

func TestPublishJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got TileEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if !reflect.DeepEqual(&got, testEvent()) {
			return fmt.Errorf("got event %v", got)
		}
		return nil
	})
	p, err := NewEventPublisher(producer, "tiles", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Publish(testEvent()); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPublishMsgpack(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got TileEvent
		left, err := got.UnmarshalMsg(val)
		if err != nil {
			return err
		}
		if len(left) != 0 {
			return fmt.Errorf("%d trailing bytes", len(left))
		}
		if !reflect.DeepEqual(&got, testEvent()) {
			return fmt.Errorf("got event %v", got)
		}
		return nil
	})
	p, err := NewEventPublisher(producer, "tiles", "msgpack")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Publish(testEvent()); err != nil {
		t.Fatal(err)
	}
	p.Close()
}

func TestPublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	p, err := NewEventPublisher(producer, "tiles", "json")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Publish(testEvent()); !errors.Is(err, dvid.ErrIO) {
		t.Errorf("expected i/o error, got %v", err)
	}
	p.Close()
}

func TestPublisherConfig(t *testing.T) {
	if p, err := (KafkaConfig{}).Initialize(); p != nil || err != nil {
		t.Errorf("expected no publisher without servers, got %v, %v", p, err)
	}
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()
	if _, err := NewEventPublisher(producer, "tiles", "xml"); !errors.Is(err, dvid.ErrBadArgument) {
		t.Errorf("expected bad argument for unknown encoding, got %v", err)
	}
	if _, err := NewEventPublisher(producer, "", "json"); !errors.Is(err, dvid.ErrBadArgument) {
		t.Errorf("expected bad argument for missing topic, got %v", err)
	}
}

func TestMsgsizeBound(t *testing.T) {
	ev := testEvent()
	b, err := ev.MarshalMsg(nil)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Msgsize() < len(b) {
		t.Errorf("Msgsize %d smaller than encoding %d", ev.Msgsize(), len(b))
	}
}
