package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// billboardShader draws every drawable as an instanced unit quad. Mode 0
// quads face the camera, mode 1 quads lie flat on the XZ plane.
const billboardShader = `
struct Camera {
    view_proj: mat4x4<f32>,
    right: vec4<f32>,
    up: vec4<f32>,
};

@group(0) @binding(0) var<uniform> camera: Camera;

struct VertexOut {
    @builtin(position) clip: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(
    @location(0) corner: vec2<f32>,
    @location(1) center: vec3<f32>,
    @location(2) mode: f32,
    @location(3) extents: vec2<f32>,
    @location(4) color: vec4<f32>,
) -> VertexOut {
    var world: vec3<f32>;
    if (mode > 0.5) {
        world = center + vec3<f32>(corner.x * extents.x, 0.0, corner.y * extents.y);
    } else {
        world = center
            + camera.right.xyz * (corner.x * extents.x)
            + camera.up.xyz * (corner.y * extents.y);
    }
    var out: VertexOut;
    out.clip = camera.view_proj * vec4<f32>(world, 1.0);
    out.color = color;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return in.color;
}
`

var errFrameInFlight = errors.New("previous frame surface not yet presented")

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount

	pipeline       *wgpu.RenderPipeline
	cameraBuffer   *wgpu.Buffer
	cameraGroup    *wgpu.BindGroup
	quadBuffer     *wgpu.Buffer
	indexBuffer    *wgpu.Buffer
	instanceBuffer *wgpu.Buffer
	instanceCap    uint64

	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// wgpuRendererBackend is the set of GPU operations the billboard renderer
// performs once per frame.
type wgpuRendererBackend interface {
	// ConfigureSurface (re)creates the swapchain, MSAA and depth targets for the given size.
	// The billboard pipeline is built on first configuration since it needs the surface format.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	//
	// Returns:
	//   - error: an error if a target or the pipeline could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode selects the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// WriteCamera uploads the camera uniform.
	WriteCamera(u CameraUniform)

	// BeginFrame acquires the swapchain texture and begins the main render pass
	// cleared to the given colour.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame(clear [3]float32) error

	// DrawBillboards uploads the instances and encodes one instanced draw.
	//
	// Returns:
	//   - error: an error if the instance buffer could not be grown
	DrawBillboards(instances []billboardInstance) error

	// EndFrame ends the pass and submits the command buffer.
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees every GPU object the backend owns.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Diorama Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	if msaaEnabled {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
		b.msaaTexture = tex
		if b.msaaTextureView, err = tex.CreateView(nil); err != nil {
			return fmt.Errorf("create msaa view: %w", err)
		}
	}

	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	b.depthTexture = depth
	if b.depthTextureView, err = depth.CreateView(nil); err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if b.pipeline == nil {
		if err := b.createPipeline(); err != nil {
			return fmt.Errorf("create billboard pipeline: %w", err)
		}
	}
	return nil
}

// createPipeline builds the billboard pipeline and its static buffers.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Billboard Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: billboardShader,
		},
	})
	if err != nil {
		return err
	}

	cameraSize := uint64(len((&CameraUniform{}).Marshal()))
	cameraLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraSize,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Billboard Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraLayout},
	})
	if err != nil {
		return err
	}

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Billboard Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 8,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: billboardInstanceSize,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 2},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 3},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: *b.surfaceFormat, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return err
	}

	if b.cameraBuffer, err = b.createBuffer("Camera Uniform", cameraSize, wgpu.BufferUsageUniform); err != nil {
		return err
	}
	b.cameraGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: cameraLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.cameraBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}

	corners := common.SliceToBytes(quadCorners)
	if b.quadBuffer, err = b.createBuffer("Quad Vertex Buffer", uint64(len(corners)), wgpu.BufferUsageVertex); err != nil {
		return err
	}
	b.queue.WriteBuffer(b.quadBuffer, 0, corners)

	indices := common.SliceToBytes(quadIndices)
	if b.indexBuffer, err = b.createBuffer("Quad Index Buffer", uint64(len(indices)), wgpu.BufferUsageIndex); err != nil {
		return err
	}
	b.queue.WriteBuffer(b.indexBuffer, 0, indices)

	return nil
}

func (b *wgpuRendererBackendImpl) createBuffer(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) WriteCamera(u CameraUniform) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(b.cameraBuffer, 0, u.Marshal())
}

func (b *wgpuRendererBackendImpl) BeginFrame(clear [3]float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Acquiring twice without a Present makes wgpu-native fail validation.
	if b.frameSurface != nil {
		return errFrameInFlight
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	color := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		color.ResolveTarget = view
	} else {
		color.View = view
	}
	color.ClearValue = wgpu.Color{R: float64(clear[0]), G: float64(clear[1]), B: float64(clear[2]), A: 1.0}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawBillboards(instances []billboardInstance) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(instances) == 0 {
		return nil
	}

	data := common.SliceToBytes(instances)
	if need := uint64(len(data)); need > b.instanceCap {
		if b.instanceBuffer != nil {
			b.instanceBuffer.Release()
		}
		capacity := max(need, b.instanceCap*2)
		buf, err := b.createBuffer("Billboard Instance Buffer", capacity, wgpu.BufferUsageVertex)
		if err != nil {
			b.instanceBuffer, b.instanceCap = nil, 0
			return err
		}
		b.instanceBuffer, b.instanceCap = buf, capacity
	}
	b.queue.WriteBuffer(b.instanceBuffer, 0, data)

	b.framePass.SetPipeline(b.pipeline)
	b.framePass.SetBindGroup(0, b.cameraGroup, nil)
	b.framePass.SetVertexBuffer(0, b.quadBuffer, 0, wgpu.WholeSize)
	b.framePass.SetVertexBuffer(1, b.instanceBuffer, 0, uint64(len(data)))
	b.framePass.SetIndexBuffer(b.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(len(quadIndices)), uint32(len(instances)), 0, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrame()
		return err
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrame()
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrame()
	b.releaseTargets()
	for _, buf := range []*wgpu.Buffer{b.instanceBuffer, b.indexBuffer, b.quadBuffer, b.cameraBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	b.instanceBuffer, b.indexBuffer, b.quadBuffer, b.cameraBuffer = nil, nil, nil, nil
	if b.cameraGroup != nil {
		b.cameraGroup.Release()
		b.cameraGroup = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// releaseFrame drops the swapchain view and texture of the current frame.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseFrame() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

// releaseTargets drops the MSAA and depth targets before a reconfigure.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}
