package renderer

// Fullscreen triangle from gl_VertexID; the far-plane point of each corner
// gives the view ray.
const skyVertexShader = `#version 410 core
uniform mat4 uInvViewProj;
uniform vec3 uCameraPos;

out vec3 vRay;

void main() {
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2) * 2.0 - 1.0;
	vec4 far = uInvViewProj * vec4(p, 1.0, 1.0);
	vRay = far.xyz / far.w - uCameraPos;
	gl_Position = vec4(p, 1.0, 1.0);
}
`

const skyFragmentShader = `#version 410 core
in vec3 vRay;
out vec4 FragColor;

uniform vec3 uSunDir;
uniform vec3 uSunRadiance;
uniform vec3 uMoonDir;
uniform vec3 uMoonRadiance;
uniform vec3 uHemiSky;
uniform vec3 uHemiGround;
uniform vec3 uBackground;
uniform float uStars;
uniform float uRayleigh;
uniform float uMie;
uniform float uMieG;
uniform float uTurbidity;
uniform float uExposure;

float hash(vec3 p) {
	p = fract(p * 0.3183099 + 0.1);
	p *= 17.0;
	return fract(p.x * p.y * p.z * (p.x + p.y + p.z));
}

void main() {
	vec3 dir = normalize(vRay);
	float up = clamp(dir.y, 0.0, 1.0);

	// Rayleigh deepens the zenith, turbidity flattens the gradient.
	float haze = clamp(uTurbidity / 10.0, 0.0, 1.0);
	vec3 zenith = uHemiSky * (1.0 + 0.1 * uRayleigh * vec3(-0.3, 0.0, 0.4));
	vec3 col = mix(uBackground, zenith, pow(up, 0.35 + 0.65 * (1.0 - haze)));

	float cosSun = dot(dir, uSunDir);
	float g = uMieG;
	float hg = (1.0 - g * g) / pow(max(1.0 + g * g - 2.0 * g * cosSun, 1e-4), 1.5);
	col += uSunRadiance * hg * uMie * 4.0;
	col += uSunRadiance * smoothstep(0.9995, 0.9999, cosSun) * 8.0;
	col += uMoonRadiance * smoothstep(0.9994, 0.9997, dot(dir, uMoonDir)) * 6.0;

	if (uStars > 0.0) {
		float star = step(0.9975, hash(floor(dir * 400.0)));
		col += vec3(star * uStars * smoothstep(0.0, 0.15, dir.y));
	}

	if (dir.y < 0.0) {
		col = mix(col, uHemiGround, smoothstep(0.0, -0.2, dir.y));
	}

	col = vec3(1.0) - exp(-col * uExposure);
	FragColor = vec4(col, 1.0);
}
`

const groundVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aTangent;
layout (location = 3) in vec2 aTexCoord;

uniform mat4 uViewProj;

out vec3 vWorldPos;
out vec3 vNormal;
out vec3 vTangent;
out vec2 vUV;

void main() {
	vWorldPos = aPosition;
	vNormal = aNormal;
	vTangent = aTangent;
	vUV = aTexCoord;
	gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

const groundFragmentShader = `#version 410 core
in vec3 vWorldPos;
in vec3 vNormal;
in vec3 vTangent;
in vec2 vUV;
out vec4 FragColor;

uniform sampler2D uColorMap;
uniform sampler2D uNormalMap;
uniform float uNormalScale;

uniform vec3 uCameraPos;
uniform vec3 uSunDir;
uniform vec3 uSunRadiance;
uniform vec3 uMoonDir;
uniform vec3 uMoonRadiance;
uniform vec3 uHemiSky;
uniform vec3 uHemiGround;
uniform float uHemiIntensity;
uniform vec3 uBackground;
uniform float uExposure;

uniform sampler2DShadow uShadowMap;
uniform mat4 uLightViewProj;
uniform float uSunShadow;
uniform float uMoonShadow;

// 3x3 PCF over the key light depth map; 1 is fully lit.
float shadowFactor(vec3 geom, vec3 l) {
	vec4 p = uLightViewProj * vec4(vWorldPos, 1.0);
	vec3 c = p.xyz / p.w * 0.5 + 0.5;
	if (c.z > 1.0) {
		return 1.0;
	}
	float bias = max(0.004 * (1.0 - dot(geom, l)), 0.0008);
	vec2 texel = 1.0 / vec2(textureSize(uShadowMap, 0));
	float lit = 0.0;
	for (int x = -1; x <= 1; x++) {
		for (int y = -1; y <= 1; y++) {
			lit += texture(uShadowMap, vec3(c.xy + vec2(x, y) * texel, c.z - bias));
		}
	}
	return lit / 9.0;
}

vec3 directional(vec3 n, vec3 geom, vec3 l, vec3 radiance, float caster) {
	float ndl = max(dot(n, l), 0.0);
	float lit = caster > 0.5 ? shadowFactor(geom, l) : 1.0;
	return radiance * ndl * lit;
}

void main() {
	vec3 geom = normalize(vNormal);
	vec3 t = normalize(vTangent - geom * dot(geom, vTangent));
	vec3 b = cross(t, geom);
	vec3 tn = texture(uNormalMap, vUV).xyz * 2.0 - 1.0;
	tn.xy *= uNormalScale;
	vec3 n = normalize(mat3(t, b, geom) * tn);

	vec3 albedo = texture(uColorMap, vUV).rgb;
	vec3 ambient = mix(uHemiGround, uHemiSky, n.y * 0.5 + 0.5) * uHemiIntensity;
	vec3 light = ambient
		+ directional(n, geom, uSunDir, uSunRadiance, uSunShadow)
		+ directional(n, geom, uMoonDir, uMoonRadiance, uMoonShadow);
	vec3 col = albedo * light;

	float dist = length(vWorldPos - uCameraPos);
	col = mix(col, uBackground, 1.0 - exp(-dist * 0.004));

	col = vec3(1.0) - exp(-col * uExposure);
	FragColor = vec4(col, 1.0);
}
`

const depthVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;

uniform mat4 uLightViewProj;

void main() {
	gl_Position = uLightViewProj * vec4(aPosition, 1.0);
}
`

const depthFragmentShader = `#version 410 core
void main() {}
`
