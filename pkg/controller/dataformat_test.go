package controller_test

import (
	"testing"

	"github.com/hamzahamidi/Xidi/pkg/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDataFormatPacketSizeValidation(t *testing.T) {
	type testCase struct {
		name     string
		dataSize uint32
		wantErr  bool
	}

	cases := []testCase{
		{name: "zero size", dataSize: 0, wantErr: false},
		{name: "not a multiple of four", dataSize: 10, wantErr: true},
		{name: "small multiple of four", dataSize: 16, wantErr: false},
		{name: "maximum size", dataSize: 1024, wantErr: false},
		{name: "above maximum", dataSize: 1028, wantErr: true},
		{name: "above maximum and misaligned", dataSize: 1027, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := controller.NewMapper(controller.StandardGamepad, nil)
			err := m.SetDataFormat(&controller.DataFormat{DataSize: tc.dataSize})
			if tc.wantErr {
				assert.ErrorIs(t, err, controller.ErrInvalidParameter)
				assert.False(t, m.IsDataFormatSet())
			} else {
				assert.NoError(t, err)
				assert.True(t, m.IsDataFormatSet())
			}
		})
	}
}

func TestSetDataFormatWildcardAscendingOrder(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	df := &controller.DataFormat{
		DataSize: 16,
		Objects: []controller.ObjectSpec{
			{Offset: 0, Type: controller.AnyInstance(controller.TypeAbsAxis)},
			{Offset: 4, Type: controller.AnyInstance(controller.TypeAbsAxis)},
			{Offset: 8, Type: controller.AnyInstance(controller.TypePushButton)},
			{Offset: 9, Type: controller.AnyInstance(controller.TypePushButton)},
		},
	}
	require.NoError(t, m.SetDataFormat(df))

	assert.Equal(t, int32(0), m.OffsetForInstance(controller.Element{Kind: controller.KindAxis, Index: 0}))
	assert.Equal(t, int32(4), m.OffsetForInstance(controller.Element{Kind: controller.KindAxis, Index: 1}))
	assert.Equal(t, int32(8), m.OffsetForInstance(controller.Element{Kind: controller.KindButton, Index: 0}))
	assert.Equal(t, int32(9), m.OffsetForInstance(controller.Element{Kind: controller.KindButton, Index: 1}))
	assert.Equal(t, int32(-1), m.OffsetForInstance(controller.Element{Kind: controller.KindButton, Index: 2}))

	elem, ok := m.InstanceForOffset(4)
	require.True(t, ok)
	assert.Equal(t, controller.Element{Kind: controller.KindAxis, Index: 1}, elem)
}

func TestSetDataFormatGuidDirectedAxisSelection(t *testing.T) {
	// StandardGamepad axes are X, Y, Z, RotZ. Asking for RotZ by type must
	// land on instance 3 even though earlier axes are free.
	m := controller.NewMapper(controller.StandardGamepad, nil)

	df := &controller.DataFormat{
		DataSize: 8,
		Objects: []controller.ObjectSpec{
			{Guid: controller.GuidPtr(controller.GuidRzAxis), Offset: 0, Type: controller.AnyInstance(controller.TypeAbsAxis)},
			{Guid: controller.GuidPtr(controller.GuidXAxis), Offset: 4, Type: controller.AnyInstance(controller.TypeAbsAxis)},
		},
	}
	require.NoError(t, m.SetDataFormat(df))

	assert.Equal(t, int32(0), m.OffsetForInstance(controller.Element{Kind: controller.KindAxis, Index: 3}))
	assert.Equal(t, int32(4), m.OffsetForInstance(controller.Element{Kind: controller.KindAxis, Index: 0}))
}

func TestSetDataFormatGuidSpecificInstanceIsTypeRelative(t *testing.T) {
	// With a guid attached, a specific instance counts among axes of that
	// semantic type. The first RotZ axis of StandardGamepad is global
	// instance 3.
	m := controller.NewMapper(controller.StandardGamepad, nil)

	df := &controller.DataFormat{
		DataSize: 4,
		Objects: []controller.ObjectSpec{
			{Guid: controller.GuidPtr(controller.GuidRzAxis), Offset: 0, Type: controller.SpecificInstance(controller.TypeAbsAxis, 0)},
		},
	}
	require.NoError(t, m.SetDataFormat(df))
	assert.Equal(t, int32(0), m.OffsetForInstance(controller.Element{Kind: controller.KindAxis, Index: 3}))

	// Asking for a second RotZ axis must fail: the shape has only one.
	bad := &controller.DataFormat{
		DataSize: 4,
		Objects: []controller.ObjectSpec{
			{Guid: controller.GuidPtr(controller.GuidRzAxis), Offset: 0, Type: controller.SpecificInstance(controller.TypeAbsAxis, 1)},
		},
	}
	assert.ErrorIs(t, m.SetDataFormat(bad), controller.ErrInvalidParameter)
}

func TestSetDataFormatSpecificInstanceZero(t *testing.T) {
	// Instance 0 addressed specifically must be selectable for every kind.
	m := controller.NewMapper(controller.StandardGamepad, nil)

	df := &controller.DataFormat{
		DataSize: 12,
		Objects: []controller.ObjectSpec{
			{Offset: 0, Type: controller.SpecificInstance(controller.TypeAbsAxis, 0)},
			{Offset: 4, Type: controller.SpecificInstance(controller.TypePov, 0)},
			{Offset: 8, Type: controller.SpecificInstance(controller.TypePushButton, 0)},
		},
	}
	require.NoError(t, m.SetDataFormat(df))

	assert.Equal(t, int32(0), m.OffsetForInstance(controller.Element{Kind: controller.KindAxis, Index: 0}))
	assert.Equal(t, int32(4), m.OffsetForInstance(controller.Element{Kind: controller.KindPov, Index: 0}))
	assert.Equal(t, int32(8), m.OffsetForInstance(controller.Element{Kind: controller.KindButton, Index: 0}))
}

func TestSetDataFormatErrors(t *testing.T) {
	type testCase struct {
		name string
		df   controller.DataFormat
	}

	cases := []testCase{
		{
			name: "axis exceeding packet bounds",
			df: controller.DataFormat{
				DataSize: 4,
				Objects: []controller.ObjectSpec{
					{Offset: 2, Type: controller.AnyInstance(controller.TypeAbsAxis)},
				},
			},
		},
		{
			name: "overlapping offsets",
			df: controller.DataFormat{
				DataSize: 8,
				Objects: []controller.ObjectSpec{
					{Offset: 0, Type: controller.AnyInstance(controller.TypeAbsAxis)},
					{Offset: 2, Type: controller.AnyInstance(controller.TypeAbsAxis)},
				},
			},
		},
		{
			name: "button byte inside an axis span",
			df: controller.DataFormat{
				DataSize: 8,
				Objects: []controller.ObjectSpec{
					{Offset: 0, Type: controller.AnyInstance(controller.TypeAbsAxis)},
					{Offset: 3, Type: controller.AnyInstance(controller.TypePushButton)},
				},
			},
		},
		{
			name: "specific instance out of range",
			df: controller.DataFormat{
				DataSize: 4,
				Objects: []controller.ObjectSpec{
					{Offset: 0, Type: controller.SpecificInstance(controller.TypeAbsAxis, 4)},
				},
			},
		},
		{
			name: "specific instance claimed twice",
			df: controller.DataFormat{
				DataSize: 8,
				Objects: []controller.ObjectSpec{
					{Offset: 0, Type: controller.SpecificInstance(controller.TypeAbsAxis, 2)},
					{Offset: 4, Type: controller.SpecificInstance(controller.TypeAbsAxis, 2)},
				},
			},
		},
		{
			name: "specific axis type absent",
			df: controller.DataFormat{
				DataSize: 4,
				Objects: []controller.ObjectSpec{
					{Guid: controller.GuidPtr(controller.GuidRxAxis), Offset: 0, Type: controller.SpecificInstance(controller.TypeAbsAxis, 0)},
				},
			},
		},
		{
			name: "button entry with pov guid",
			df: controller.DataFormat{
				DataSize: 4,
				Objects: []controller.ObjectSpec{
					{Guid: controller.GuidPtr(controller.GuidPov), Offset: 0, Type: controller.AnyInstance(controller.TypePushButton)},
				},
			},
		},
		{
			name: "unknown kind mask",
			df: controller.DataFormat{
				DataSize: 4,
				Objects: []controller.ObjectSpec{
					{Offset: 0, Type: controller.AnyInstance(0x40)},
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := controller.NewMapper(controller.StandardGamepad, nil)
			err := m.SetDataFormat(&tc.df)
			assert.ErrorIs(t, err, controller.ErrInvalidParameter)
			assert.False(t, m.IsDataFormatSet())
		})
	}
}

func TestSetDataFormatFailureInvalidatesPreviousFormat(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	good := &controller.DataFormat{
		DataSize: 4,
		Objects: []controller.ObjectSpec{
			{Offset: 0, Type: controller.AnyInstance(controller.TypeAbsAxis)},
		},
	}
	require.NoError(t, m.SetDataFormat(good))
	require.True(t, m.IsDataFormatSet())

	bad := &controller.DataFormat{
		DataSize: 4,
		Objects: []controller.ObjectSpec{
			{Offset: 0, Type: controller.SpecificInstance(controller.TypeAbsAxis, 99)},
		},
	}
	require.Error(t, m.SetDataFormat(bad))

	assert.False(t, m.IsDataFormatSet())
	assert.Equal(t, int32(-1), m.OffsetForInstance(controller.Element{Kind: controller.KindAxis, Index: 0}))
	assert.Equal(t, uint32(0), m.PacketSize())
}

func TestSetDataFormatWildcardMissesAreAccepted(t *testing.T) {
	// StandardGamepad has one POV and four axes; extra wildcard entries
	// must negotiate successfully as unused offsets.
	m := controller.NewMapper(controller.StandardGamepad, nil)

	df := &controller.DataFormat{
		DataSize: 32,
		Objects: []controller.ObjectSpec{
			{Offset: 0, Type: controller.AnyInstance(controller.TypePov)},
			{Offset: 4, Type: controller.AnyInstance(controller.TypePov)},
			{Guid: controller.GuidPtr(controller.GuidRxAxis), Offset: 8, Type: controller.AnyInstance(controller.TypeAbsAxis)},
		},
	}
	require.NoError(t, m.SetDataFormat(df))

	assert.Equal(t, int32(0), m.OffsetForInstance(controller.Element{Kind: controller.KindPov, Index: 0}))
	_, ok := m.InstanceForOffset(4)
	assert.False(t, ok)
	_, ok = m.InstanceForOffset(8)
	assert.False(t, ok)
}

func TestNativeDataFormatRoundTrip(t *testing.T) {
	for _, shape := range controller.Shapes() {
		t.Run(shape.Name(), func(t *testing.T) {
			m := controller.NewMapper(shape, nil)
			df := controller.NativeDataFormat(shape)
			require.NoError(t, m.SetDataFormat(df))

			numAxes := shape.NumInstances(controller.KindAxis)
			numPovs := shape.NumInstances(controller.KindPov)
			numButtons := shape.NumInstances(controller.KindButton)
			assert.Len(t, df.Objects, numAxes+numPovs+numButtons)
			assert.Equal(t, uint32(0), df.DataSize%4)

			// Every element of the shape must be mapped at its native
			// position.
			for i := 0; i < numAxes; i++ {
				assert.Equal(t, int32(i*4), m.OffsetForInstance(controller.Element{Kind: controller.KindAxis, Index: i}))
			}
			for i := 0; i < numPovs; i++ {
				assert.Equal(t, int32(numAxes*4+i*4), m.OffsetForInstance(controller.Element{Kind: controller.KindPov, Index: i}))
			}
			for i := 0; i < numButtons; i++ {
				assert.Equal(t, int32(numAxes*4+numPovs*4+i), m.OffsetForInstance(controller.Element{Kind: controller.KindButton, Index: i}))
			}
		})
	}
}

func TestResetDataFormat(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)
	require.NoError(t, m.SetDataFormat(controller.NativeDataFormat(controller.StandardGamepad)))
	require.True(t, m.IsDataFormatSet())

	m.ResetDataFormat()
	assert.False(t, m.IsDataFormatSet())
	assert.Equal(t, int32(-1), m.OffsetForInstance(controller.Element{Kind: controller.KindAxis, Index: 0}))
}
