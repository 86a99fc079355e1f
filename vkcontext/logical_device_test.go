package vkcontext_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkngwrapper/vkboot/vkcontext"
)

func candidateWith(p *platform, graphics, present int, extensions ...string) *vkcontext.Candidate {
	return &vkcontext.Candidate{
		Device:     p.device("gpu", nil, nil, extensions...),
		Extensions: vkcontext.NewNameSet(extensions...),
		Indices: vkcontext.QueueFamilyIndices{
			GraphicsFamily: intPtr(graphics),
			PresentFamily:  intPtr(present),
		},
	}
}

func TestCreateLogicalDeviceSharedFamily(t *testing.T) {
	p := newPlatform()

	device, err := vkcontext.CreateLogicalDevice(p.instance, candidateWith(p, 0, 0, swapchainExtension), deviceExtensions, false)
	require.NoError(t, err)

	options := p.instance.deviceOptions
	require.Len(t, options.QueueFamilies, 1)
	assert.Equal(t, 0, options.QueueFamilies[0].QueueFamilyIndex)
	assert.Equal(t, []float32{1.0}, options.QueueFamilies[0].QueuePriorities)
	assert.Equal(t, []int{0}, device.QueueFamilies)
	assert.Empty(t, options.LayerNames)

	assert.Same(t, device.GraphicsQueue, device.PresentQueue)
	assert.Equal(t, []string{"CreateDevice:gpu", "GetQueue:0:0", "GetQueue:0:0"}, p.rec.calls)
}

func TestCreateLogicalDeviceDistinctFamilies(t *testing.T) {
	p := newPlatform()

	device, err := vkcontext.CreateLogicalDevice(p.instance, candidateWith(p, 2, 1, swapchainExtension), deviceExtensions, false)
	require.NoError(t, err)

	options := p.instance.deviceOptions
	require.Len(t, options.QueueFamilies, 2)
	assert.Equal(t, 2, options.QueueFamilies[0].QueueFamilyIndex)
	assert.Equal(t, 1, options.QueueFamilies[1].QueueFamilyIndex)
	for _, queueFamily := range options.QueueFamilies {
		assert.Equal(t, []float32{1.0}, queueFamily.QueuePriorities)
	}

	assert.NotSame(t, device.GraphicsQueue, device.PresentQueue)
	assert.Equal(t, 2, device.GraphicsQueue.QueueFamilyIndex())
	assert.Equal(t, 1, device.PresentQueue.QueueFamilyIndex())
}

func TestCreateLogicalDeviceExtensionsAndLayers(t *testing.T) {
	p := newPlatform()

	device, err := vkcontext.CreateLogicalDevice(p.instance, candidateWith(p, 0, 0, swapchainExtension, vkcontext.PortabilitySubsetExtension), deviceExtensions, true)
	require.NoError(t, err)

	options := p.instance.deviceOptions
	assert.Equal(t, []string{swapchainExtension, vkcontext.PortabilitySubsetExtension}, options.ExtensionNames)
	assert.Equal(t, vkcontext.ValidationLayers, options.LayerNames)
	assert.Equal(t, options.ExtensionNames, device.EnabledExtensions)
	assert.Equal(t, vkcontext.ValidationLayers, device.EnabledLayers)
}

func TestCreateLogicalDeviceFailure(t *testing.T) {
	p := newPlatform()
	p.instance.deviceErr = errors.New("VK_ERROR_FEATURE_NOT_PRESENT")

	_, err := vkcontext.CreateLogicalDevice(p.instance, candidateWith(p, 0, 0, swapchainExtension), deviceExtensions, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vkcontext.ErrLogicalDeviceCreationFailed))
	assert.Contains(t, err.Error(), "VK_ERROR_FEATURE_NOT_PRESENT")
}

func TestCreateLogicalDeviceRequiresResolvedFamilies(t *testing.T) {
	p := newPlatform()
	candidate := candidateWith(p, 0, 0)
	candidate.Indices.PresentFamily = nil

	_, err := vkcontext.CreateLogicalDevice(p.instance, candidate, nil, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vkcontext.ErrLogicalDeviceCreationFailed))
	assert.Zero(t, p.rec.count("CreateDevice:gpu"))
}
