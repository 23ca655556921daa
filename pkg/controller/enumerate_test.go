package controller_test

import (
	"testing"

	"github.com/hamzahamidi/Xidi/pkg/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectObjects(t *testing.T, m *controller.Mapper, flags controller.TypeMask) []controller.ObjectInstance {
	t.Helper()
	var objects []controller.ObjectInstance
	err := m.EnumerateObjects(flags, func(oi *controller.ObjectInstance) controller.EnumResponse {
		objects = append(objects, *oi)
		return controller.EnumContinue
	})
	require.NoError(t, err)
	return objects
}

func TestEnumerateObjectsOrderAndNames(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)
	objects := collectObjects(t, m, controller.TypeAll)

	require.Len(t, objects, 4+1+12)

	expectedNames := []string{
		"X Axis", "Y Axis", "Z Axis", "RotZ Axis",
		"POV 1",
		"Button 1", "Button 2", "Button 3", "Button 4", "Button 5", "Button 6",
		"Button 7", "Button 8", "Button 9", "Button 10", "Button 11", "Button 12",
	}
	for i, oi := range objects {
		assert.Equal(t, expectedNames[i], oi.Name, "object %d", i)
		assert.Equal(t, controller.ObjectInstanceSize, oi.Size)
		assert.NotZero(t, oi.Flags&controller.FlagPolled)
	}

	// Native offsets: axes, then the POV, then single byte buttons.
	assert.Equal(t, int32(0), objects[0].Offset)
	assert.Equal(t, int32(12), objects[3].Offset)
	assert.Equal(t, int32(16), objects[4].Offset)
	assert.Equal(t, int32(20), objects[5].Offset)
	assert.Equal(t, int32(31), objects[16].Offset)

	assert.Equal(t, controller.GuidXAxis, objects[0].Guid)
	assert.Equal(t, controller.GuidPov, objects[4].Guid)
	assert.Equal(t, controller.GuidButton, objects[5].Guid)
}

func TestEnumerateObjectsKindFilter(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	axes := collectObjects(t, m, controller.TypeAbsAxis)
	require.Len(t, axes, 4)
	for _, oi := range axes {
		assert.NotZero(t, oi.Flags&controller.FlagAspectPosition)
	}

	buttons := collectObjects(t, m, controller.TypePushButton)
	assert.Len(t, buttons, 12)

	povs := collectObjects(t, m, controller.TypePov)
	assert.Len(t, povs, 1)

	axesAndPovs := collectObjects(t, m, controller.TypeAbsAxis|controller.TypePov)
	assert.Len(t, axesAndPovs, 5)
}

func TestEnumerateObjectsStop(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	seen := 0
	err := m.EnumerateObjects(controller.TypeAll, func(*controller.ObjectInstance) controller.EnumResponse {
		seen++
		if seen == 3 {
			return controller.EnumStop
		}
		return controller.EnumContinue
	})
	require.NoError(t, err)
	assert.Equal(t, 3, seen)
}

func TestEnumerateObjectsInvalidCallbackResponse(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	err := m.EnumerateObjects(controller.TypeAll, func(*controller.ObjectInstance) controller.EnumResponse {
		return controller.EnumResponse(7)
	})
	assert.ErrorIs(t, err, controller.ErrInvalidParameter)
}

func TestEnumerateObjectsReportsNegotiatedOffsets(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)
	df := &controller.DataFormat{
		DataSize: 8,
		Objects: []controller.ObjectSpec{
			{Guid: controller.GuidPtr(controller.GuidYAxis), Offset: 4, Type: controller.AnyInstance(controller.TypeAbsAxis)},
		},
	}
	require.NoError(t, m.SetDataFormat(df))

	objects := collectObjects(t, m, controller.TypeAbsAxis)
	require.Len(t, objects, 4)

	// Only the Y axis is mapped; everything else reports -1.
	assert.Equal(t, int32(-1), objects[0].Offset)
	assert.Equal(t, int32(4), objects[1].Offset)
	assert.Equal(t, int32(-1), objects[2].Offset)
	assert.Equal(t, int32(-1), objects[3].Offset)
}

func TestGetObjectInfo(t *testing.T) {
	m := controller.NewMapper(controller.StandardGamepad, nil)

	oi, err := m.GetObjectInfo(controller.ObjectInstanceSize, uint32(controller.MakeTypeTag(controller.KindButton, 4)), controller.TargetById)
	require.NoError(t, err)
	assert.Equal(t, "Button 5", oi.Name)
	assert.Equal(t, controller.GuidButton, oi.Guid)

	_, err = m.GetObjectInfo(100, uint32(controller.MakeTypeTag(controller.KindButton, 4)), controller.TargetById)
	assert.ErrorIs(t, err, controller.ErrInvalidParameter)

	_, err = m.GetObjectInfo(controller.ObjectInstanceSize, uint32(controller.MakeTypeTag(controller.KindPov, 3)), controller.TargetById)
	assert.ErrorIs(t, err, controller.ErrObjectNotFound)

	// Addressing by offset requires a negotiated format.
	_, err = m.GetObjectInfo(controller.ObjectInstanceSize, 0, controller.TargetByOffset)
	assert.ErrorIs(t, err, controller.ErrObjectNotFound)

	require.NoError(t, m.SetDataFormat(controller.NativeDataFormat(controller.StandardGamepad)))
	oi, err = m.GetObjectInfo(controller.ObjectInstanceSize, 16, controller.TargetByOffset)
	require.NoError(t, err)
	assert.Equal(t, "POV 1", oi.Name)
}

func TestCapabilities(t *testing.T) {
	type testCase struct {
		name     string
		shape    *controller.Shape
		expected controller.Capabilities
	}

	cases := []testCase{
		{name: "standard", shape: controller.StandardGamepad, expected: controller.Capabilities{Axes: 4, Buttons: 12, Povs: 1}},
		{name: "extended", shape: controller.ExtendedGamepad, expected: controller.Capabilities{Axes: 6, Buttons: 10, Povs: 1}},
		{name: "native", shape: controller.XInputNative, expected: controller.Capabilities{Axes: 6, Buttons: 10, Povs: 1}},
		{name: "shared triggers", shape: controller.XInputSharedTriggers, expected: controller.Capabilities{Axes: 5, Buttons: 10, Povs: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := controller.NewMapper(tc.shape, nil)
			assert.Equal(t, tc.expected, m.Capabilities())
		})
	}
}
