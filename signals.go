package scribe

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for descriptor and serializer events.
var (
	SignalDescriptorBuilt   = capitan.NewSignal("scribe.descriptor.built", "Descriptor finalized from accumulated state")
	SignalDescriptorEmpty   = capitan.NewSignal("scribe.descriptor.empty", "Empty descriptor created")
	SignalSerializerCreated = capitan.NewSignal("scribe.serializer.created", "Serializer instantiated")
	SignalMarshalStart      = capitan.NewSignal("scribe.marshal.start", "Marshal operation beginning")
	SignalMarshalComplete   = capitan.NewSignal("scribe.marshal.complete", "Marshal operation finished")
)

// Keys for typed event data.
var (
	KeyTypeName      = capitan.NewStringKey("type_name")
	KeyContentType   = capitan.NewStringKey("content_type")
	KeyView          = capitan.NewStringKey("view")
	KeyPropertyCount = capitan.NewIntKey("property_count")
	KeySize          = capitan.NewIntKey("size")
	KeyDuration      = capitan.NewDurationKey("duration")
	KeyError         = capitan.NewErrorKey("error")
)

// emitDescriptorBuilt emits an event when a descriptor is finalized.
func emitDescriptorBuilt(ctx context.Context, typeName string, propertyCount int) {
	capitan.Emit(ctx, SignalDescriptorBuilt,
		KeyTypeName.Field(typeName),
		KeyPropertyCount.Field(propertyCount),
	)
}

// emitDescriptorEmpty emits an event when an empty descriptor is created.
func emitDescriptorEmpty(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalDescriptorEmpty,
		KeyTypeName.Field(typeName),
	)
}

// emitSerializerCreated emits an event when a serializer is created.
func emitSerializerCreated(ctx context.Context, contentType, typeName, view string) {
	capitan.Emit(ctx, SignalSerializerCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyView.Field(view),
	)
}

// emitMarshalStart emits an event when a marshal begins.
func emitMarshalStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalMarshalStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitMarshalComplete emits an event when a marshal finishes.
func emitMarshalComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMarshalComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMarshalComplete, fields...)
	}
}
