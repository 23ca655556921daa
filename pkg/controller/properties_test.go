package controller_test

import (
	"testing"

	"github.com/hamzahamidi/Xidi/pkg/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func axisByIdHeader(size uint32, index int) *controller.PropertyHeader {
	return &controller.PropertyHeader{
		Size:       size,
		HeaderSize: controller.PropertyHeaderSize,
		Obj:        uint32(controller.MakeTypeTag(controller.KindAxis, index)),
		How:        controller.TargetById,
	}
}

func TestPropertyDefaults(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	var data controller.PropertyData
	require.NoError(t, m.GetProperty(controller.PropRange, axisByIdHeader(controller.PropertyRangeSize, 0), &data))
	assert.Equal(t, int32(-32768), data.RangeMin)
	assert.Equal(t, int32(32767), data.RangeMax)

	require.NoError(t, m.GetProperty(controller.PropDeadzone, axisByIdHeader(controller.PropertyDwordSize, 0), &data))
	assert.Equal(t, uint32(0), data.Value)

	require.NoError(t, m.GetProperty(controller.PropSaturation, axisByIdHeader(controller.PropertyDwordSize, 0), &data))
	assert.Equal(t, uint32(10000), data.Value)
}

func TestPropertyAxisMode(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	deviceHdr := &controller.PropertyHeader{
		Size:       controller.PropertyDwordSize,
		HeaderSize: controller.PropertyHeaderSize,
		How:        controller.TargetDevice,
	}

	var data controller.PropertyData
	require.NoError(t, m.GetProperty(controller.PropAxisMode, deviceHdr, &data))
	assert.Equal(t, controller.AxisModeAbsolute, data.Value)

	// Re-asserting absolute mode succeeds without changing anything.
	data.Value = controller.AxisModeAbsolute
	assert.ErrorIs(t, m.SetProperty(controller.PropAxisMode, deviceHdr, &data), controller.ErrNoEffect)

	// Any other mode is unsupported.
	data.Value = 1
	assert.ErrorIs(t, m.SetProperty(controller.PropAxisMode, deviceHdr, &data), controller.ErrUnsupported)
}

func TestPropertyHeaderValidation(t *testing.T) {
	type testCase struct {
		name    string
		prop    controller.PropertyID
		hdr     controller.PropertyHeader
		wantErr error
	}

	cases := []testCase{
		{
			name:    "wrong header size",
			prop:    controller.PropDeadzone,
			hdr:     controller.PropertyHeader{Size: controller.PropertyDwordSize, HeaderSize: 8, How: controller.TargetById, Obj: uint32(controller.MakeTypeTag(controller.KindAxis, 0))},
			wantErr: controller.ErrInvalidParameter,
		},
		{
			name:    "device-wide with nonzero object",
			prop:    controller.PropDeadzone,
			hdr:     controller.PropertyHeader{Size: controller.PropertyDwordSize, HeaderSize: controller.PropertyHeaderSize, How: controller.TargetDevice, Obj: 4},
			wantErr: controller.ErrInvalidParameter,
		},
		{
			name:    "range with dword size",
			prop:    controller.PropRange,
			hdr:     controller.PropertyHeader{Size: controller.PropertyDwordSize, HeaderSize: controller.PropertyHeaderSize, How: controller.TargetById, Obj: uint32(controller.MakeTypeTag(controller.KindAxis, 0))},
			wantErr: controller.ErrInvalidParameter,
		},
		{
			name:    "deadzone read device-wide",
			prop:    controller.PropDeadzone,
			hdr:     controller.PropertyHeader{Size: controller.PropertyDwordSize, HeaderSize: controller.PropertyHeaderSize, How: controller.TargetDevice},
			wantErr: controller.ErrUnsupported,
		},
		{
			name:    "by usage is unresolvable",
			prop:    controller.PropDeadzone,
			hdr:     controller.PropertyHeader{Size: controller.PropertyDwordSize, HeaderSize: controller.PropertyHeaderSize, How: controller.TargetByUsage, Obj: 1},
			wantErr: controller.ErrObjectNotFound,
		},
		{
			name:    "target is a button",
			prop:    controller.PropDeadzone,
			hdr:     controller.PropertyHeader{Size: controller.PropertyDwordSize, HeaderSize: controller.PropertyHeaderSize, How: controller.TargetById, Obj: uint32(controller.MakeTypeTag(controller.KindButton, 0))},
			wantErr: controller.ErrUnsupported,
		},
		{
			name:    "nonexistent axis instance",
			prop:    controller.PropDeadzone,
			hdr:     controller.PropertyHeader{Size: controller.PropertyDwordSize, HeaderSize: controller.PropertyHeaderSize, How: controller.TargetById, Obj: uint32(controller.MakeTypeTag(controller.KindAxis, 9))},
			wantErr: controller.ErrObjectNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := controller.NewMapper(controller.StandardGamepad, nil)
			var data controller.PropertyData
			assert.ErrorIs(t, m.GetProperty(tc.prop, &tc.hdr, &data), tc.wantErr)
		})
	}
}

func TestSetPropertyValueValidation(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)
	hdr := axisByIdHeader(controller.PropertyDwordSize, 0)

	data := controller.PropertyData{Value: 10001}
	assert.ErrorIs(t, m.SetProperty(controller.PropDeadzone, hdr, &data), controller.ErrInvalidParameter)
	assert.ErrorIs(t, m.SetProperty(controller.PropSaturation, hdr, &data), controller.ErrInvalidParameter)

	rangeHdr := axisByIdHeader(controller.PropertyRangeSize, 0)
	data = controller.PropertyData{RangeMin: 100, RangeMax: 100}
	assert.ErrorIs(t, m.SetProperty(controller.PropRange, rangeHdr, &data), controller.ErrInvalidParameter)
	data = controller.PropertyData{RangeMin: 100, RangeMax: -100}
	assert.ErrorIs(t, m.SetProperty(controller.PropRange, rangeHdr, &data), controller.ErrInvalidParameter)

	// A failed write leaves the previous value intact.
	var got controller.PropertyData
	require.NoError(t, m.GetProperty(controller.PropRange, rangeHdr, &got))
	assert.Equal(t, int32(-32768), got.RangeMin)
	assert.Equal(t, int32(32767), got.RangeMax)
}

func TestSetPropertyDeviceWideAppliesToAllAxes(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	deviceHdr := &controller.PropertyHeader{
		Size:       controller.PropertyDwordSize,
		HeaderSize: controller.PropertyHeaderSize,
		How:        controller.TargetDevice,
	}
	data := controller.PropertyData{Value: 2500}
	require.NoError(t, m.SetProperty(controller.PropDeadzone, deviceHdr, &data))

	for i := 0; i < controller.StandardGamepad.NumInstances(controller.KindAxis); i++ {
		var got controller.PropertyData
		require.NoError(t, m.GetProperty(controller.PropDeadzone, axisByIdHeader(controller.PropertyDwordSize, i), &got))
		assert.Equal(t, uint32(2500), got.Value, "axis %d", i)
	}
}

func TestSetPropertySingleAxisLeavesOthersAlone(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	data := controller.PropertyData{RangeMin: 0, RangeMax: 1000}
	require.NoError(t, m.SetProperty(controller.PropRange, axisByIdHeader(controller.PropertyRangeSize, 2), &data))

	var got controller.PropertyData
	require.NoError(t, m.GetProperty(controller.PropRange, axisByIdHeader(controller.PropertyRangeSize, 2), &got))
	assert.Equal(t, int32(0), got.RangeMin)
	assert.Equal(t, int32(1000), got.RangeMax)

	require.NoError(t, m.GetProperty(controller.PropRange, axisByIdHeader(controller.PropertyRangeSize, 0), &got))
	assert.Equal(t, int32(-32768), got.RangeMin)
	assert.Equal(t, int32(32767), got.RangeMax)
}

func TestPropertyByOffsetAddressing(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	offsetHdr := &controller.PropertyHeader{
		Size:       controller.PropertyDwordSize,
		HeaderSize: controller.PropertyHeaderSize,
		How:        controller.TargetByOffset,
		Obj:        4,
	}

	// Without a negotiated format no offset resolves.
	var data controller.PropertyData
	assert.ErrorIs(t, m.GetProperty(controller.PropDeadzone, offsetHdr, &data), controller.ErrObjectNotFound)

	df := &controller.DataFormat{
		DataSize: 8,
		Objects: []controller.ObjectSpec{
			{Offset: 0, Type: controller.AnyInstance(controller.TypeAbsAxis)},
			{Offset: 4, Type: controller.AnyInstance(controller.TypeAbsAxis)},
		},
	}
	require.NoError(t, m.SetDataFormat(df))

	data.Value = 3000
	require.NoError(t, m.SetProperty(controller.PropDeadzone, offsetHdr, &data))

	// Offset 4 negotiated to axis instance 1.
	var got controller.PropertyData
	require.NoError(t, m.GetProperty(controller.PropDeadzone, axisByIdHeader(controller.PropertyDwordSize, 1), &got))
	assert.Equal(t, uint32(3000), got.Value)
}

func TestPropertiesSurviveFormatReset(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	data := controller.PropertyData{Value: 1500}
	require.NoError(t, m.SetProperty(controller.PropDeadzone, axisByIdHeader(controller.PropertyDwordSize, 0), &data))

	require.NoError(t, m.SetDataFormat(controller.NativeDataFormat(controller.StandardGamepad)))
	m.ResetDataFormat()

	var got controller.PropertyData
	require.NoError(t, m.GetProperty(controller.PropDeadzone, axisByIdHeader(controller.PropertyDwordSize, 0), &got))
	assert.Equal(t, uint32(1500), got.Value)
}
